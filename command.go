package ssd1322

import (
	"fmt"

	"github.com/BeatGlow/ssd1322/conn"
)

// Opcode is a controller command byte.
type Opcode uint8

// Controller commands.
const (
	EnableGrayscaleTable  Opcode = 0x00
	SetColumnAddress      Opcode = 0x15
	WriteRAM              Opcode = 0x5C
	SetRowAddress         Opcode = 0x75
	SetRemap              Opcode = 0xA0
	SetStartLine          Opcode = 0xA1
	SetDisplayOffset      Opcode = 0xA2
	SetDisplayNormal      Opcode = 0xA4
	SetDisplayAllOn       Opcode = 0xA5
	SetDisplayAllOff      Opcode = 0xA6
	SetDisplayInverse     Opcode = 0xA7
	EnablePartialDisplay  Opcode = 0xA8
	ExitPartialDisplay    Opcode = 0xA9
	SetFunction           Opcode = 0xAB
	SetDisplayOff         Opcode = 0xAE
	SetDisplayOn          Opcode = 0xAF
	SetPhaseLength        Opcode = 0xB1
	SetClockDivider       Opcode = 0xB3
	SetEnhancementA       Opcode = 0xB4
	SetGPIO               Opcode = 0xB5
	SetSecondPrecharge    Opcode = 0xB6
	SetGrayscaleTable     Opcode = 0xB8
	DefaultGrayscaleTable Opcode = 0xB9
	SetPrechargeVoltage   Opcode = 0xBB
	SetVCOMH              Opcode = 0xBE
	SetContrast           Opcode = 0xC1
	SetMasterCurrent      Opcode = 0xC7
	SetMultiplexRatio     Opcode = 0xCA
	SetEnhancementB       Opcode = 0xD1
	SetCommandLock        Opcode = 0xFD
)

type opcodeInfo struct {
	name string
	args int
}

var opcodes = map[Opcode]opcodeInfo{
	EnableGrayscaleTable:  {"enable gray scale table", 0},
	SetColumnAddress:      {"set column address", 2},
	WriteRAM:              {"write RAM", 0},
	SetRowAddress:         {"set row address", 2},
	SetRemap:              {"set remap", 2},
	SetStartLine:          {"set start line", 1},
	SetDisplayOffset:      {"set display offset", 1},
	SetDisplayNormal:      {"normal display", 0},
	SetDisplayAllOn:       {"all pixels on", 0},
	SetDisplayAllOff:      {"all pixels off", 0},
	SetDisplayInverse:     {"inverse display", 0},
	EnablePartialDisplay:  {"enable partial display", 2},
	ExitPartialDisplay:    {"exit partial display", 0},
	SetFunction:           {"function selection", 1},
	SetDisplayOff:         {"display off", 0},
	SetDisplayOn:          {"display on", 0},
	SetPhaseLength:        {"set phase length", 1},
	SetClockDivider:       {"set clock divider", 1},
	SetEnhancementA:       {"display enhancement A", 2},
	SetGPIO:               {"set GPIO", 1},
	SetSecondPrecharge:    {"set second pre-charge period", 1},
	SetGrayscaleTable:     {"set gray scale table", 15},
	DefaultGrayscaleTable: {"default gray scale table", 0},
	SetPrechargeVoltage:   {"set pre-charge voltage", 1},
	SetVCOMH:              {"set VCOMH", 1},
	SetContrast:           {"set contrast current", 1},
	SetMasterCurrent:      {"master current control", 1},
	SetMultiplexRatio:     {"set multiplex ratio", 1},
	SetEnhancementB:       {"display enhancement B", 2},
	SetCommandLock:        {"set command lock", 1},
}

// Valid reports whether op is a known command.
func (op Opcode) Valid() bool {
	_, ok := opcodes[op]
	return ok
}

// Args is the number of argument bytes op takes, or -1 for unknown commands.
func (op Opcode) Args() int {
	if info, ok := opcodes[op]; ok {
		return info.args
	}
	return -1
}

func (op Opcode) String() string {
	if info, ok := opcodes[op]; ok {
		return info.name
	}
	return fmt.Sprintf("opcode(%#02x)", uint8(op))
}

// Command is an opcode with its arguments.
type Command struct {
	Op   Opcode
	Args []byte
}

func (c Command) String() string {
	return fmt.Sprintf("%s % x", c.Op, c.Args)
}

// Validate checks the opcode is known and has the expected number of arguments.
func (c Command) Validate() error {
	if !c.Op.Valid() {
		return fmt.Errorf("%w: unknown opcode %#02x", ErrCommand, uint8(c.Op))
	}
	if want := c.Op.Args(); len(c.Args) != want {
		return fmt.Errorf("%w: %s takes %d arguments, got %d", ErrCommand, c.Op, want, len(c.Args))
	}
	return nil
}

// send the opcode as a command byte followed by its arguments as data.
func (c Command) send(b conn.Bus) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if err := b.Command(byte(c.Op)); err != nil {
		return err
	}
	if len(c.Args) > 0 {
		return b.Data(c.Args...)
	}
	return nil
}

func commands(b conn.Bus, cmds ...Command) error {
	for _, c := range cmds {
		if err := c.send(b); err != nil {
			return err
		}
	}
	return nil
}

// initSequence configures the controller for a 256x64 panel, leaving the display off.
var initSequence = []Command{
	{SetCommandLock, []byte{0x12}},        // Unlock IC
	{SetDisplayOff, nil},                  // Display off
	{SetClockDivider, []byte{0x91}},       // Display divide clockratio/freq
	{SetMultiplexRatio, []byte{0x3f}},     // Set MUX ratio
	{SetDisplayOffset, []byte{0x00}},      // Display offset
	{SetStartLine, []byte{0x00}},          // Display start line
	{SetRemap, []byte{0x14, 0x11}},        // Set remap & dual COM line
	{SetGPIO, []byte{0x00}},               // Set GPIO (disabled)
	{SetFunction, []byte{0x01}},           // Function select (internal Vdd)
	{SetEnhancementA, []byte{0xa0, 0xfd}}, // Display enhancement A (external VSL)
	{SetContrast, []byte{0xff}},           // Contrast current
	{SetMasterCurrent, []byte{0x0f}},      // Master contrast (reset)
	{DefaultGrayscaleTable, nil},          // Set default gray scale table
	{SetPhaseLength, []byte{0xe2}},        // Phase length
	{SetEnhancementB, []byte{0x82, 0x20}}, // Display enhancement B (reset)
	{SetPrechargeVoltage, []byte{0x1f}},   // Pre-charge voltage
	{SetSecondPrecharge, []byte{0x08}},    // 2nd pre-charge period
	{SetVCOMH, []byte{0x07}},              // Set VCOMH
	{SetDisplayNormal, nil},               // Normal display
	{ExitPartialDisplay, nil},             // Exit partial display
}

// Mode is the display mode.
type Mode uint8

// Display modes.
const (
	ModeNormal  = Mode(SetDisplayNormal)
	ModeAllOn   = Mode(SetDisplayAllOn)
	ModeAllOff  = Mode(SetDisplayAllOff)
	ModeInverse = Mode(SetDisplayInverse)
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeAllOn:
		return "all on"
	case ModeAllOff:
		return "all off"
	case ModeInverse:
		return "inverse"
	default:
		return fmt.Sprintf("mode(%#02x)", uint8(m))
	}
}
