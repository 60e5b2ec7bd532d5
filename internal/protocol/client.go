package protocol

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"

	"github.com/cwbriones/editor/internal/logger"
)

// Color is a "#rrggbb" RGB string.
type Color string

const (
	Black Color = "#000000"
	White Color = "#ffffff"
)

// Client speaks the display protocol over a persistent connection.
// Every outbound command is written and flushed on its own line.
type Client struct {
	out    *bufio.Writer
	in     io.Reader
	closer io.Closer
}

// Dial connects to a display server at addr.
func Dial(addr string) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", addr, err)
	}
	logger.Info("connected to display server", "addr", addr)
	c := NewClient(conn, conn)
	c.closer = conn
	return c, nil
}

// NewClient returns a client reading events from r and writing commands to w.
func NewClient(r io.Reader, w io.Writer) *Client {
	return &Client{out: bufio.NewWriter(w), in: r}
}

// EscapeText doubles every comma so a naive comma split on the receiving
// side can recover the payload.
func EscapeText(s string) string {
	return strings.ReplaceAll(s, ",", ",,")
}

func UnescapeText(s string) string {
	return strings.ReplaceAll(s, ",,", ",")
}

func (c *Client) Text(x, y int, color Color, s string) error {
	return c.send("text," + strconv.Itoa(x) + "," + strconv.Itoa(y) + "," + string(color) + "," + EscapeText(s))
}

func (c *Client) Rect(x, y, width, height int, color Color) error {
	return c.send(fmt.Sprintf("rect,%d,%d,%d,%d,%s", x, y, width, height, color))
}

func (c *Client) Clear() error {
	return c.send("clear")
}

func (c *Client) send(line string) error {
	logger.Debug("send", "line", line)
	if _, err := c.out.WriteString(line); err != nil {
		return fmt.Errorf("write command: %w", err)
	}
	if err := c.out.WriteByte('\n'); err != nil {
		return fmt.Errorf("write command: %w", err)
	}
	if err := c.out.Flush(); err != nil {
		return fmt.Errorf("flush command: %w", err)
	}
	return nil
}

// Events returns the inbound event sequence. There is one sequence per
// connection; it cannot be restarted.
func (c *Client) Events() *Events {
	return newEvents(c.in)
}

func (c *Client) Close() error {
	if c.closer == nil {
		return nil
	}
	return c.closer.Close()
}
