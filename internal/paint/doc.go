// Package paint draws Material surfaces: layered drop shadows and filled
// rounded rectangles with independent corner radii.
// It is independent of any windowing toolkit; hosts supply a Canvas from
// their paint callback and the renderer emits closed paths into it.
package paint
