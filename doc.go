// Package ssd1322 is a driver for the Solomon Systech SSD1322 controller driving a
// 256x64 pixel, 16 level gray scale OLED panel over a 4-wire SPI bus.
//
// The panel keeps a packed 4 bits per pixel framebuffer. Drawing only changes the
// framebuffer; [Panel.Update] sends the whole frame to the display RAM.
//
// A typical program:
//
//	if _, err := host.Init(); err != nil {
//		return err
//	}
//	t, err := conn.Open(nil)
//	if err != nil {
//		return err
//	}
//	panel := ssd1322.New(t, nil)
//	if err := panel.Initialize(); err != nil {
//		return err
//	}
//	defer panel.Close()
//
//	panel.DrawLine(image.Pt(0, 0), image.Pt(255, 63), pixel.On)
//	return panel.Update()
package ssd1322
