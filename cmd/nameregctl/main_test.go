package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/nameregistry/internal/identity"
	"github.com/danmuck/nameregistry/internal/logging"
	"github.com/danmuck/nameregistry/internal/protocol/envelope"
	"github.com/danmuck/nameregistry/internal/protocol/schema"
	"github.com/danmuck/nameregistry/internal/record"
	"github.com/danmuck/nameregistry/internal/testutil/testlog"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var (
	program = identity.Identity{0x50}.String()
	payer   = identity.Identity{0x01}.String()
	entry   = identity.Identity{0x02}.String()
	owner   = identity.Identity{0x03}.String()
	class   = identity.Identity{0x04}.String()
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCreateCommandJSON(t *testing.T) {
	testlog.Start(t)
	out, err := run(t, "create", "--program", program,
		"--hashed-name", "abababab", "--lamports", "1000000", "--space", "100",
		"--entry", entry, "--payer", payer, "--owner", owner)
	require.NoError(t, err)

	var view instructionView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.Equal(t, program, view.ProgramID)
	require.Equal(t, "create", view.Variant)
	require.Len(t, view.Accounts, 6)
	require.Equal(t, identity.Placeholder.String(), view.Accounts[4].Pubkey)
	require.Equal(t, identity.Placeholder.String(), view.Accounts[5].Pubkey)
	require.Equal(t, []string{payer}, view.Signers)
	require.Equal(t, []string{payer, entry}, view.Writable)
	require.Len(t, view.DataHex, 2*21)
}

func TestCreateCommandClassMustSign(t *testing.T) {
	testlog.Start(t)
	out, err := run(t, "create", "--program", program, "--name", "alice",
		"--entry", entry, "--payer", payer, "--owner", owner, "--class", class)
	require.NoError(t, err)

	var view instructionView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.Equal(t, class, view.Accounts[4].Pubkey)
	require.True(t, view.Accounts[4].IsSigner)
	require.False(t, view.Accounts[4].IsWritable)
}

func TestDeleteCommandHex(t *testing.T) {
	testlog.Start(t)
	out, err := run(t, "delete", "--program", program, "-o", "hex",
		"--entry", entry, "--owner", owner, "--refund", payer)
	require.NoError(t, err)
	require.Equal(t, "03", strings.TrimSpace(out))
}

func TestReallocCommandFrame(t *testing.T) {
	testlog.Start(t)
	out, err := run(t, "realloc", "--program", program, "-o", "frame", "--message-id", "7",
		"--space", "256", "--payer", payer, "--entry", entry, "--owner", owner)
	require.NoError(t, err)

	raw, err := hex.DecodeString(strings.TrimSpace(out))
	require.NoError(t, err)
	msg, err := envelope.ReadMessage(raw)
	require.NoError(t, err)
	require.Equal(t, uint64(7), msg.ID)
	require.NotNil(t, msg.Instruction)
	require.Len(t, msg.Instruction.Accounts, 4)
	require.Equal(t, []byte{4, 0, 1, 0, 0}, msg.Instruction.Data)
}

func TestInspectInstructionFrame(t *testing.T) {
	testlog.Start(t)
	framed, err := run(t, "delete", "--program", program, "-o", "frame",
		"--entry", entry, "--owner", owner, "--refund", payer)
	require.NoError(t, err)

	out, err := run(t, "inspect", strings.TrimSpace(framed))
	require.NoError(t, err)

	var view messageView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.Equal(t, "instruction", view.MessageType)
	require.Nil(t, view.Record)
	require.NotNil(t, view.Instruction)
	require.Equal(t, "delete", view.Instruction.Variant)
	require.Equal(t, []string{owner}, view.Instruction.Signers)
	require.Equal(t, []string{entry, payer}, view.Instruction.Writable)
}

func TestMissingRequiredFlag(t *testing.T) {
	testlog.Start(t)
	_, err := run(t, "transfer", "--program", program, "--entry", entry, "--owner", owner)
	require.ErrorContains(t, err, "--new-owner is required")
}

func TestDecodeCommand(t *testing.T) {
	testlog.Start(t)
	out, err := run(t, "decode", "04ff000000")
	require.NoError(t, err)

	var view map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.Equal(t, "realloc", view["variant"])
	require.EqualValues(t, 255, view["space"])
}

func TestRecordCommand(t *testing.T) {
	testlog.Start(t)
	raw, err := record.Record{Header: record.Header{Owner: identity.Identity{0x03}}, Data: []byte("hi")}.MarshalBinary()
	require.NoError(t, err)

	out, err := run(t, "record", hex.EncodeToString(raw))
	require.NoError(t, err)

	var view recordView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.Equal(t, owner, view.Owner)
	require.Equal(t, identity.Placeholder.String(), view.Parent)
	require.False(t, view.HasParent)
	require.False(t, view.HasClass)
	require.Equal(t, 2, view.DataSize)
}

func TestRecordCommandFrame(t *testing.T) {
	testlog.Start(t)
	rec := record.Record{
		Header: record.Header{Owner: identity.Identity{0x03}, Class: identity.Identity{0x04}},
		Data:   []byte("hi"),
	}
	raw, err := rec.MarshalBinary()
	require.NoError(t, err)

	_, err = run(t, "record", "-o", "frame", hex.EncodeToString(raw))
	require.ErrorContains(t, err, "--entry is required")

	out, err := run(t, "record", "-o", "frame", "--message-id", "5",
		"--entry", entry, "--slot", "99", hex.EncodeToString(raw))
	require.NoError(t, err)
	framed, err := hex.DecodeString(strings.TrimSpace(out))
	require.NoError(t, err)

	msg, err := envelope.ReadMessage(framed)
	require.NoError(t, err)
	require.Equal(t, schema.MsgRecord, msg.Type)
	require.NotNil(t, msg.Record)
	require.Equal(t, envelope.RecordMessage{
		Entry:  identity.Identity{0x02},
		Slot:   99,
		Record: rec,
	}, *msg.Record)

	out, err = run(t, "inspect", hex.EncodeToString(framed))
	require.NoError(t, err)
	var view messageView
	require.NoError(t, json.Unmarshal([]byte(out), &view))
	require.Equal(t, "record", view.MessageType)
	require.Equal(t, uint64(5), view.MessageID)
	require.NotNil(t, view.Record)
	require.Equal(t, entry, view.Record.Entry)
	require.Equal(t, uint64(99), view.Record.Slot)
	require.True(t, view.Record.HasClass)
}

func TestLogLevelPrecedence(t *testing.T) {
	testlog.Start(t)
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	path := filepath.Join(t.TempDir(), "client.toml")
	require.NoError(t, os.WriteFile(path, []byte("log_level = \"error\"\n"), 0o600))
	deleteArgs := []string{"delete", "--program", program, "-o", "hex",
		"--entry", entry, "--owner", owner, "--refund", payer}

	// env alone, no config file
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	t.Setenv(logging.EnvLogLevel, "debug")
	_, err := run(t, deleteArgs...)
	require.NoError(t, err)
	require.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	// env wins over log_level
	t.Setenv(logging.EnvLogLevel, "warn")
	_, err = run(t, append([]string{"--config", path}, deleteArgs...)...)
	require.NoError(t, err)
	require.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	// log_level applies when env is unset
	t.Setenv(logging.EnvLogLevel, "")
	_, err = run(t, append([]string{"--config", path}, deleteArgs...)...)
	require.NoError(t, err)
	require.Equal(t, zerolog.ErrorLevel, zerolog.GlobalLevel())

	// neither set keeps the current level
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	_, err = run(t, deleteArgs...)
	require.NoError(t, err)
	require.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
