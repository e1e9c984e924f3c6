//go:build !vkdebug

package main

// enableValidation requests the Khronos validation layer and the debug
// report callback. Off in release builds.
const enableValidation = false
