//go:build windows
// +build windows

package kbwindows

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/leandrodaf/midikeys/sdk/contracts"
	"golang.org/x/sys/windows"
)

// Error definitions for key injection.
var (
	ErrUnmappableKey = errors.New("character has no key on the active layout")
	ErrSendInput     = errors.New("SendInput rejected the event")
)

const (
	inputKeyboard = 1

	keyeventfKeyUp    = 0x0002
	keyeventfScanCode = 0x0008

	mapvkVKToVSC = 0

	vkShift   = 0x10
	vkControl = 0x11
	vkPause   = 0x13
	vkEscape  = 0x1B
	vkF12     = 0x7B
	vkLShift  = 0xA0
)

// keybdInput mirrors KEYBDINPUT.
type keybdInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

// input mirrors INPUT for the keyboard variant; padding covers the larger MOUSEINPUT member of the union.
type input struct {
	inputType uint32
	ki        keybdInput
	padding   [8]byte
}

var physicalKeys = map[contracts.PhysicalKey]uintptr{
	contracts.KeyEscape:  vkEscape,
	contracts.KeyShift:   vkShift,
	contracts.KeyControl: vkControl,
	contracts.KeyPause:   vkPause,
	contracts.KeyF12:     vkF12,
}

// Load the user32.dll library and required functions
var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procSendInput        = user32.NewProc("SendInput")
	procVkKeyScanW       = user32.NewProc("VkKeyScanW")
	procMapVirtualKeyW   = user32.NewProc("MapVirtualKeyW")
	procGetAsyncKeyState = user32.NewProc("GetAsyncKeyState")
)

// Keyboard injects scan codes with SendInput. Games that read raw input
// ignore virtual-key-only events, so both the virtual key and its scan
// code are sent.
type Keyboard struct {
	logger contracts.Logger
	vk     map[rune]uint16 // resolved virtual keys, by character
}

// NewKeyboard creates the Windows keyboard backend.
func NewKeyboard(logger contracts.Logger) (contracts.Keyboard, error) {
	if err := procSendInput.Find(); err != nil {
		return nil, fmt.Errorf("user32 SendInput unavailable: %w", err)
	}
	logger.Info("Keyboard backend created for Windows")
	return &Keyboard{logger: logger, vk: make(map[rune]uint16)}, nil
}

// virtualKey resolves the unshifted key that produces ch.
func (k *Keyboard) virtualKey(ch rune) (uint16, error) {
	if vk, ok := k.vk[ch]; ok {
		return vk, nil
	}
	r0, _, _ := procVkKeyScanW.Call(uintptr(uint16(ch)))
	if int16(r0) == -1 {
		return 0, fmt.Errorf("%w: %q", ErrUnmappableKey, ch)
	}
	vk := uint16(r0 & 0xFF)
	k.vk[ch] = vk
	return vk, nil
}

func (k *Keyboard) send(vk uint16, up bool) error {
	scan, _, _ := procMapVirtualKeyW.Call(uintptr(vk), mapvkVKToVSC)
	flags := uint32(keyeventfScanCode)
	if up {
		flags |= keyeventfKeyUp
	}
	in := input{
		inputType: inputKeyboard,
		ki:        keybdInput{wVk: vk, wScan: uint16(scan), dwFlags: flags},
	}
	n, _, err := procSendInput.Call(1, uintptr(unsafe.Pointer(&in)), unsafe.Sizeof(in))
	if n != 1 {
		k.logger.Error(fmt.Sprintf("SendInput failed for vk 0x%X: %v", vk, err))
		return fmt.Errorf("%w: vk 0x%X: %v", ErrSendInput, vk, err)
	}
	return nil
}

// Press sends a key-down for the key producing ch.
func (k *Keyboard) Press(ch rune) error {
	vk, err := k.virtualKey(ch)
	if err != nil {
		return err
	}
	return k.send(vk, false)
}

// Release sends a key-up for the key producing ch.
func (k *Keyboard) Release(ch rune) error {
	vk, err := k.virtualKey(ch)
	if err != nil {
		return err
	}
	return k.send(vk, true)
}

// PressModifier holds the left shift key.
func (k *Keyboard) PressModifier() error {
	return k.send(vkLShift, false)
}

// ReleaseModifier releases the left shift key.
func (k *Keyboard) ReleaseModifier() error {
	return k.send(vkLShift, true)
}

// HeldPhysicalKeys polls GetAsyncKeyState for every known physical key. It does not block.
func (k *Keyboard) HeldPhysicalKeys() []contracts.PhysicalKey {
	var held []contracts.PhysicalKey
	for _, key := range contracts.KnownPhysicalKeys {
		r0, _, _ := procGetAsyncKeyState.Call(physicalKeys[key])
		if uint16(r0)&0x8000 != 0 {
			held = append(held, key)
		}
	}
	return held
}
