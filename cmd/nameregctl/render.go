package main

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/danmuck/nameregistry/internal/config"
	"github.com/danmuck/nameregistry/internal/protocol/envelope"
	"github.com/danmuck/nameregistry/internal/protocol/instruction"
	"github.com/danmuck/nameregistry/internal/registry"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type accountView struct {
	Pubkey     string `json:"pubkey"`
	IsSigner   bool   `json:"is_signer"`
	IsWritable bool   `json:"is_writable"`
}

type instructionView struct {
	ProgramID string        `json:"program_id"`
	Variant   string        `json:"variant"`
	Accounts  []accountView `json:"accounts"`
	DataHex   string        `json:"data_hex"`
	Signers   []string      `json:"signers"`
	Writable  []string      `json:"writable"`
}

type recordView struct {
	Entry     string `json:"entry,omitempty"`
	Slot      uint64 `json:"slot,omitempty"`
	Parent    string `json:"parent"`
	Owner     string `json:"owner"`
	Class     string `json:"class"`
	HasParent bool   `json:"has_parent"`
	HasClass  bool   `json:"has_class"`
	DataHex   string `json:"data_hex"`
	DataSize  int    `json:"data_size"`
}

// messageView is one decoded frame; exactly one body is set.
type messageView struct {
	MessageID   uint64           `json:"message_id"`
	MessageType string           `json:"message_type"`
	Instruction *instructionView `json:"instruction,omitempty"`
	Record      *recordView      `json:"record,omitempty"`
}

func (c *cli) render(cmd *cobra.Command, ix registry.Instruction) error {
	out := cmd.OutOrStdout()
	log.Debug().
		Str("command", cmd.Name()).
		Int("accounts", len(ix.Accounts)).
		Str("output", c.cfg.Output).
		Msg("nameregctl: rendering instruction")

	switch c.cfg.Output {
	case config.OutputHex:
		_, err := fmt.Fprintln(out, hex.EncodeToString(ix.Data))
		return err
	case config.OutputBase64:
		_, err := fmt.Fprintln(out, base64.StdEncoding.EncodeToString(ix.Data))
		return err
	case config.OutputFrame:
		raw, err := envelope.Encode(c.messageID, ix)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, hex.EncodeToString(raw))
		return err
	default:
		return writeJSON(out, instructionViewOf(ix))
	}
}

func instructionViewOf(ix registry.Instruction) instructionView {
	view := instructionView{
		ProgramID: ix.ProgramID.String(),
		Accounts:  make([]accountView, 0, len(ix.Accounts)),
		DataHex:   hex.EncodeToString(ix.Data),
		Signers:   make([]string, 0, 2),
		Writable:  make([]string, 0, len(ix.Accounts)),
	}
	if len(ix.Data) > 0 {
		view.Variant = instruction.Tag(ix.Data[0]).String()
	}
	for _, acc := range ix.Accounts {
		view.Accounts = append(view.Accounts, accountView{
			Pubkey:     acc.Identity.String(),
			IsSigner:   acc.IsSigner,
			IsWritable: acc.IsWritable,
		})
	}
	for _, id := range ix.Signers() {
		view.Signers = append(view.Signers, id.String())
	}
	for _, id := range ix.Writable() {
		view.Writable = append(view.Writable, id.String())
	}
	return view
}

func recordViewOf(msg envelope.RecordMessage) recordView {
	h := msg.Record.Header
	view := recordView{
		Slot:      msg.Slot,
		Parent:    h.Parent.String(),
		Owner:     h.Owner.String(),
		Class:     h.Class.String(),
		HasParent: h.HasParent(),
		HasClass:  h.HasClass(),
		DataHex:   hex.EncodeToString(msg.Record.Data),
		DataSize:  len(msg.Record.Data),
	}
	if !msg.Entry.IsPlaceholder() {
		view.Entry = msg.Entry.String()
	}
	return view
}

// renderRecord prints a record as JSON, or as a record frame for -o frame.
func (c *cli) renderRecord(cmd *cobra.Command, msg envelope.RecordMessage) error {
	out := cmd.OutOrStdout()
	if c.cfg.Output != config.OutputFrame {
		return writeJSON(out, recordViewOf(msg))
	}
	if msg.Entry.IsPlaceholder() {
		return fmt.Errorf("--entry is required for frame output")
	}
	raw, err := envelope.EncodeRecord(c.messageID, msg)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, hex.EncodeToString(raw))
	return err
}

func messageViewOf(msg envelope.Message) messageView {
	view := messageView{MessageID: msg.ID}
	switch {
	case msg.Instruction != nil:
		view.MessageType = "instruction"
		iv := instructionViewOf(*msg.Instruction)
		view.Instruction = &iv
	case msg.Record != nil:
		view.MessageType = "record"
		rv := recordViewOf(*msg.Record)
		view.Record = &rv
	}
	return view
}

func requestView(req instruction.Request) map[string]any {
	view := map[string]any{"variant": req.Tag().String(), "tag": uint8(req.Tag())}
	switch r := req.(type) {
	case instruction.Create:
		view["hashed_name_hex"] = hex.EncodeToString(r.HashedName)
		view["lamports"] = r.Lamports
		view["space"] = r.Space
	case instruction.Update:
		view["offset"] = r.Offset
		view["data_hex"] = hex.EncodeToString(r.Data)
	case instruction.Transfer:
		view["new_owner"] = r.NewOwner.String()
	case instruction.Realloc:
		view["space"] = r.Space
	}
	return view
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
