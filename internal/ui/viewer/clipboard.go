package viewer

import (
	"os/exec"
	"runtime"
)

// Clipboard defines the interface for clipboard operations.
type Clipboard interface {
	Copy(text string) error
}

// SystemClipboard implements Clipboard using the system clipboard.
type SystemClipboard struct{}

// MockClipboard records the last copied text for testing.
type MockClipboard struct {
	Copied string
}

// Copy stores the text and always succeeds.
func (c *MockClipboard) Copy(text string) error {
	c.Copied = text
	return nil
}

// Copy copies text to the system clipboard.
func (SystemClipboard) Copy(text string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("pbcopy")
	default:
		cmd = exec.Command("xclip", "-selection", "clipboard")
	}

	pipe, err := cmd.StdinPipe()
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return err
	}

	if _, err := pipe.Write([]byte(text)); err != nil {
		return err
	}

	if err := pipe.Close(); err != nil {
		return err
	}

	return cmd.Wait()
}
