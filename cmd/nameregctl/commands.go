package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/danmuck/nameregistry/internal/protocol/envelope"
	"github.com/danmuck/nameregistry/internal/protocol/instruction"
	"github.com/danmuck/nameregistry/internal/record"
	"github.com/danmuck/nameregistry/internal/registry"
	"github.com/spf13/cobra"
)

func (c *cli) createCommand() *cobra.Command {
	var (
		name, hashedHex                            string
		lamports                                   uint64
		space                                      uint32
		entry, payer, owner, class, parent, pOwner string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Build a create request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hashed, err := hashedName(name, hashedHex)
			if err != nil {
				return err
			}
			p := registry.CreateParams{HashedName: hashed, Lamports: lamports, Space: space}
			if p.Entry, err = requiredID("entry", entry); err != nil {
				return err
			}
			if p.Payer, err = c.payerID(payer); err != nil {
				return err
			}
			if p.Owner, err = requiredID("owner", owner); err != nil {
				return err
			}
			if p.Class, err = optionalID("class", class); err != nil {
				return err
			}
			if p.Parent, err = optionalID("parent", parent); err != nil {
				return err
			}
			if p.ParentOwner, err = optionalID("parent-owner", pOwner); err != nil {
				return err
			}
			ix, err := registry.Create(c.cfg.ProgramID, p)
			if err != nil {
				return err
			}
			return c.render(cmd, ix)
		},
	}
	f := cmd.Flags()
	f.StringVar(&name, "name", "", "plain name, hashed with the registry prefix")
	f.StringVar(&hashedHex, "hashed-name", "", "pre-hashed name (hex), used instead of --name")
	f.Uint64Var(&lamports, "lamports", 0, "funding for the new entry in base units")
	f.Uint32Var(&space, "space", 0, "data region size in bytes")
	f.StringVar(&entry, "entry", "", "new entry identity")
	f.StringVar(&payer, "payer", "", "funding payer identity (defaults to config payer)")
	f.StringVar(&owner, "owner", "", "owner identity")
	f.StringVar(&class, "class", "", "optional class identity (must sign)")
	f.StringVar(&parent, "parent", "", "optional parent entry identity")
	f.StringVar(&pOwner, "parent-owner", "", "optional parent owner identity (must sign)")
	return cmd
}

func (c *cli) updateCommand() *cobra.Command {
	var (
		offset                   uint32
		data, dataHex            string
		entry, authority, parent string
	)
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Build an update request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := []byte(data)
			if dataHex != "" {
				b, err := hex.DecodeString(strings.TrimPrefix(dataHex, "0x"))
				if err != nil {
					return fmt.Errorf("parse --data-hex: %w", err)
				}
				payload = b
			}
			p := registry.UpdateParams{Offset: offset, Data: payload}
			var err error
			if p.Entry, err = requiredID("entry", entry); err != nil {
				return err
			}
			if p.UpdateAuthority, err = requiredID("authority", authority); err != nil {
				return err
			}
			if p.Parent, err = optionalID("parent", parent); err != nil {
				return err
			}
			ix, err := registry.Update(c.cfg.ProgramID, p)
			if err != nil {
				return err
			}
			return c.render(cmd, ix)
		},
	}
	f := cmd.Flags()
	f.Uint32Var(&offset, "offset", 0, "byte offset into the entry data")
	f.StringVar(&data, "data", "", "data to write, as text")
	f.StringVar(&dataHex, "data-hex", "", "data to write, as hex (overrides --data)")
	f.StringVar(&entry, "entry", "", "entry identity")
	f.StringVar(&authority, "authority", "", "update authority identity (owner or class)")
	f.StringVar(&parent, "parent", "", "optional parent entry identity (writable)")
	return cmd
}

func (c *cli) transferCommand() *cobra.Command {
	var newOwner, entry, owner, class string
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Build a transfer request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				p   registry.TransferParams
				err error
			)
			if p.NewOwner, err = requiredID("new-owner", newOwner); err != nil {
				return err
			}
			if p.Entry, err = requiredID("entry", entry); err != nil {
				return err
			}
			if p.Owner, err = requiredID("owner", owner); err != nil {
				return err
			}
			if p.Class, err = optionalID("class", class); err != nil {
				return err
			}
			ix, err := registry.Transfer(c.cfg.ProgramID, p)
			if err != nil {
				return err
			}
			return c.render(cmd, ix)
		},
	}
	f := cmd.Flags()
	f.StringVar(&newOwner, "new-owner", "", "new owner identity")
	f.StringVar(&entry, "entry", "", "entry identity")
	f.StringVar(&owner, "owner", "", "current owner identity")
	f.StringVar(&class, "class", "", "optional class identity (must sign)")
	return cmd
}

func (c *cli) deleteCommand() *cobra.Command {
	var entry, owner, refund string
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Build a delete request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				p   registry.DeleteParams
				err error
			)
			if p.Entry, err = requiredID("entry", entry); err != nil {
				return err
			}
			if p.Owner, err = requiredID("owner", owner); err != nil {
				return err
			}
			if p.RefundTarget, err = requiredID("refund", refund); err != nil {
				return err
			}
			ix, err := registry.Delete(c.cfg.ProgramID, p)
			if err != nil {
				return err
			}
			return c.render(cmd, ix)
		},
	}
	f := cmd.Flags()
	f.StringVar(&entry, "entry", "", "entry identity")
	f.StringVar(&owner, "owner", "", "owner identity")
	f.StringVar(&refund, "refund", "", "identity receiving the reclaimed funds")
	return cmd
}

func (c *cli) reallocCommand() *cobra.Command {
	var (
		space               uint32
		payer, entry, owner string
	)
	cmd := &cobra.Command{
		Use:   "realloc",
		Short: "Build a realloc request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := registry.ReallocParams{Space: space}
			var err error
			if p.Payer, err = c.payerID(payer); err != nil {
				return err
			}
			if p.Entry, err = requiredID("entry", entry); err != nil {
				return err
			}
			if p.Owner, err = requiredID("owner", owner); err != nil {
				return err
			}
			ix, err := registry.Realloc(c.cfg.ProgramID, p)
			if err != nil {
				return err
			}
			return c.render(cmd, ix)
		},
	}
	f := cmd.Flags()
	f.Uint32Var(&space, "space", 0, "new data region size in bytes")
	f.StringVar(&payer, "payer", "", "funding payer identity (defaults to config payer)")
	f.StringVar(&entry, "entry", "", "entry identity")
	f.StringVar(&owner, "owner", "", "owner identity")
	return cmd
}

func (c *cli) decodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <payload-hex>",
		Short: "Decode a request payload",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := decodeHexArg("payload", args[0])
			if err != nil {
				return err
			}
			req, err := instruction.Decode(raw)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), requestView(req))
		},
	}
}

func (c *cli) recordCommand() *cobra.Command {
	var (
		entry string
		slot  uint64
	)
	cmd := &cobra.Command{
		Use:   "record <account-data-hex>",
		Short: "Decode an entry account's header and data, or frame it with -o frame",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := decodeHexArg("account data", args[0])
			if err != nil {
				return err
			}
			rec, err := record.ParseRecord(raw)
			if err != nil {
				return err
			}
			entryID, err := optionalID("entry", entry)
			if err != nil {
				return err
			}
			msg := envelope.RecordMessage{Slot: slot, Record: rec}
			if entryID != nil {
				msg.Entry = *entryID
			}
			return c.renderRecord(cmd, msg)
		},
	}
	f := cmd.Flags()
	f.StringVar(&entry, "entry", "", "entry identity the data was read from (required for frame output)")
	f.Uint64Var(&slot, "slot", 0, "host slot the data was observed at")
	return cmd
}

func (c *cli) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <frame-hex>",
		Short: "Decode a submission frame carrying an instruction or a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := decodeHexArg("frame", args[0])
			if err != nil {
				return err
			}
			msg, err := envelope.ReadMessage(raw)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), messageViewOf(msg))
		},
	}
}

func decodeHexArg(what, arg string) ([]byte, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(arg), "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", what, err)
	}
	return raw, nil
}

func hashedName(name, hashedHex string) ([]byte, error) {
	if hashedHex != "" {
		b, err := hex.DecodeString(strings.TrimPrefix(hashedHex, "0x"))
		if err != nil {
			return nil, fmt.Errorf("parse --hashed-name: %w", err)
		}
		return b, nil
	}
	if name == "" {
		return nil, fmt.Errorf("--name or --hashed-name is required")
	}
	return registry.HashName(name), nil
}
