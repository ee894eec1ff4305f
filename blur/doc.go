// Package blur generates the progressive blur keyframes behind the
// wallpaper's blur slider.
//
// PyramidGenerator downsamples the source image, blurs it at a reduced
// radius, and upsamples back to full resolution for each level; blurring
// at reduced resolution trades a small quality loss for a large speed
// gain. The actual Gaussian pass goes through the Backend interface so
// the pipeline is backend-agnostic: gpu.BlurPass runs it on wgpu, and
// Software runs the same separable two-pass convolution on the CPU.
package blur
