//go:build vkdebug

package main

// enableValidation requests the Khronos validation layer and the debug
// report callback. A missing layer is a fatal configuration error, not
// something to run without.
const enableValidation = true
