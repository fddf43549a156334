// Package audio plays a sound when an overlay appears.
// It uses the beep library to play WAV, OGG, and MP3 files, with one sound
// per toast severity and one shared by all snackbars.
package audio
