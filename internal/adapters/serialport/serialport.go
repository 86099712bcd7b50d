// Package serialport provides the line-oriented transport used by
// correlation mode, where an external device's output drives the sample
// cadence.
package serialport

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/tarm/serial"
)

// LineTransport is bidirectional newline-terminated text I/O.
type LineTransport interface {
	ReadLine() (string, error)
	WriteLine(s string) error
	Close() error
}

// Transport wraps a tarm/serial port with buffered line reads.
type Transport struct {
	port *serial.Port
	r    *bufio.Reader
}

func Open(name string, baud int) (*Transport, error) {
	p, err := serial.OpenPort(&serial.Config{Name: name, Baud: baud})
	if err != nil {
		return nil, fmt.Errorf("serial open %s: %w", name, err)
	}
	return &Transport{port: p, r: bufio.NewReader(p)}, nil
}

// ReadLine blocks until one newline-terminated line arrives and returns it
// without the trailing newline. A read error discards any partial line.
func (t *Transport) ReadLine() (string, error) {
	line, err := t.r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (t *Transport) WriteLine(s string) error {
	_, err := t.port.Write([]byte(s + "\n"))
	return err
}

func (t *Transport) Close() error {
	return t.port.Close()
}

var _ LineTransport = (*Transport)(nil)
