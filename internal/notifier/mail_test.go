package notifier

import (
	"bytes"
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMailNotifier_BuildMessage(t *testing.T) {
	n := NewMailNotifier("smtp.example.com", 465, "sender@example.com", "secret", "me@example.com", time.Second)

	msg, err := n.buildMessage("Rain alert", "There is 60% chance of rain in the coming seven days")
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	raw := buf.String()
	assert.Contains(t, raw, "Subject: Rain alert")
	assert.Contains(t, raw, "<sender@example.com>")
	assert.Contains(t, raw, "<me@example.com>")
	assert.Contains(t, raw, "chance of rain")
}

func TestMailNotifier_BadRecipient(t *testing.T) {
	n := NewMailNotifier("smtp.example.com", 465, "sender@example.com", "secret", "not an address", time.Second)
	err := n.Send(context.Background(), "subject", "body")
	assert.Error(t, err)
}

func TestMailNotifier_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	require.NoError(t, ln.Close())

	n := NewMailNotifier("127.0.0.1", port, "sender@example.com", "secret", "me@example.com", time.Second)
	start := time.Now()
	err = n.Send(context.Background(), "Rain alert", "body")
	assert.Error(t, err)
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, NewLogNotifier().Send(context.Background(), "s", "b"))
}
