// Package pixel implements the packed 4-bit grayscale framebuffer used by the SSD1322.
//
// Two pixels share one byte: the even x pixel lives in the high nibble and the odd x
// pixel in the low nibble. The same packing is used for bitmaps and for the byte
// stream written to display RAM. The types are compatible with Go's native
// [color.Color] and [image.Image] / [draw.Image] interfaces.
package pixel
