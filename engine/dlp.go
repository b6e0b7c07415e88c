package engine

import (
	"fmt"
	"time"

	"go.bug.st/serial"
)

// Trigger lines on the DLP-IO8-G.
const (
	LineReference = "1"
	LineTest      = "2"
	LineResponse  = "3"
)

// Trigger marks stimulus and response events for an external recorder.
type Trigger interface {
	Pulse(lines string)
}

type DLPIO8G struct {
	port serial.Port
}

func NewDLPIO8G(device string, baudrate int) (*DLPIO8G, error) {
	mode := &serial.Mode{
		BaudRate: baudrate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(device, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", device, err)
	}

	d := &DLPIO8G{port: port}
	if !d.Ping() {
		port.Close()
		return nil, fmt.Errorf("%s did not respond to ping", device)
	}

	// Binary mode
	if _, err := port.Write([]byte{0x5C}); err != nil {
		port.Close()
		return nil, fmt.Errorf("set binary mode on %s: %w", device, err)
	}

	return d, nil
}

func (d *DLPIO8G) Close() {
	if d.port != nil {
		d.port.Close()
	}
}

func (d *DLPIO8G) Ping() bool {
	if _, err := d.port.Write([]byte{0x27}); err != nil {
		return false
	}

	buf := make([]byte, 1)
	n, err := d.port.Read(buf)
	return err == nil && n == 1 && buf[0] == 'Q'
}

func (d *DLPIO8G) Set(lines string) {
	if _, err := d.port.Write([]byte(lines)); err != nil {
		fmt.Printf("write error in dlp Set: %v\n", err)
	}
}

func (d *DLPIO8G) Unset(lines string) {
	if _, err := d.port.Write(unsetCommand(lines)); err != nil {
		fmt.Printf("write error in dlp Unset: %v\n", err)
	}
}

// Pulse raises lines for 5 ms.
func (d *DLPIO8G) Pulse(lines string) {
	d.Set(lines)
	time.Sleep(5 * time.Millisecond)
	d.Unset(lines)
}

// unsetCommand maps line digits 1-8 to the device's clear characters.
func unsetCommand(lines string) []byte {
	const clearKeys = "QWERTYUI"
	cmd := []byte(lines)
	for i, c := range cmd {
		if c >= '1' && c <= '8' {
			cmd[i] = clearKeys[c-'1']
		}
	}
	return cmd
}
