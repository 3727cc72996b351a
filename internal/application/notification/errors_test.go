package notification

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o deadline exceeded" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestIsTransient(t *testing.T) {
	transitorios := []error{
		errors.New("dial tcp 10.0.0.1:587: connection refused"),
		errors.New("read: connection reset by peer"),
		errors.New("write: broken pipe"),
		errors.New("lookup smtp.local: no such host"),
		errors.New("451 temporary failure, try again"),
		errors.New("unexpected EOF"),
		fmt.Errorf("enviar correo: %w", errors.New("request timed out")),
		timeoutError{},
	}
	for _, err := range transitorios {
		assert.True(t, IsTransient(err), "%v debe ser transitorio", err)
	}

	permanentes := []error{
		errors.New("550 mailbox does not exist"),
		errors.New("535 authentication credentials invalid"),
		errors.New("payload demasiado grande"),
	}
	for _, err := range permanentes {
		assert.False(t, IsTransient(err), "%v debe ser permanente", err)
	}

	assert.False(t, IsTransient(nil))
}

func TestBackoff_Delay(t *testing.T) {
	exp := Backoff{Mode: BackoffExponential, BaseDelay: 2 * time.Second}
	assert.Equal(t, 2*time.Second, exp.Delay(1))
	assert.Equal(t, 4*time.Second, exp.Delay(2))
	assert.Equal(t, 8*time.Second, exp.Delay(3))

	fixed := Backoff{Mode: BackoffFixed, BaseDelay: 500 * time.Millisecond}
	assert.Equal(t, 500*time.Millisecond, fixed.Delay(1))
	assert.Equal(t, 500*time.Millisecond, fixed.Delay(4))

	// Sin base configurada se usa el default.
	assert.Equal(t, DefaultBaseDelay, Backoff{Mode: BackoffFixed}.Delay(1))
}
