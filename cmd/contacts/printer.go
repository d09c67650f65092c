package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dropDatabas3/contacts/internal/store/core"
)

// printer escribe resultados en texto (tabla) o JSON según --out.
type printer struct {
	w    io.Writer
	json bool
}

func (p *printer) encode(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *printer) message(msg string) error {
	if p.json {
		return p.encode(map[string]any{"ok": true, "message": msg})
	}
	_, err := fmt.Fprintln(p.w, msg)
	return err
}

func (p *printer) id(key string, id int64) error {
	if p.json {
		return p.encode(map[string]int64{key: id})
	}
	_, err := fmt.Fprintf(p.w, "%s=%d\n", key, id)
	return err
}

func (p *printer) affected(n int64) error {
	if p.json {
		return p.encode(map[string]int64{"rows_affected": n})
	}
	_, err := fmt.Fprintf(p.w, "rows_affected=%d\n", n)
	return err
}

func (p *printer) rows(rows []core.ClientRow) error {
	if p.json {
		if rows == nil {
			rows = []core.ClientRow{}
		}
		return p.encode(rows)
	}
	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFIRST_NAME\tLAST_NAME\tEMAIL\tPHONE")
	for _, r := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", r.ClientID, r.FirstName, r.LastName, r.Email, r.PhoneNum())
	}
	return tw.Flush()
}

func (p *printer) client(c *core.Client) error {
	if p.json {
		return p.encode(c)
	}
	_, err := fmt.Fprintf(p.w, "id=%d first_name=%s last_name=%s email=%s phones=[%s]\n",
		c.ID, c.FirstName, c.LastName, c.Email, strings.Join(c.Phones, ","))
	return err
}
