// Command rowstore reads and writes the log and sys_info tables of a MySQL
// database.
//
//	rowstore [flags] log NAME TEXT
//	rowstore [flags] logs [NAME]
//	rowstore [flags] sysinfo-get NAME
//	rowstore [flags] sysinfo-set NAME JSON
//	rowstore [flags] sysinfo-delete NAME
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"v.io/x/lib/vlog"

	"github.com/likearthian/rowstore"
	"github.com/likearthian/rowstore/eventlog"
	"github.com/likearthian/rowstore/sysinfo"
)

var command struct {
	db    rowstore.MySQLConfig
	limit int
}

func main() {
	log.SetFlags(0)
	command.db.RegisterFlags(pflag.CommandLine)
	pflag.IntVarP(&command.limit, "limit", "n", eventlog.DefaultLimit, "number of log entries to list")
	pflag.Parse()

	args := pflag.Args()
	if len(args) == 0 {
		pflag.Usage()
		os.Exit(2)
	}

	db, err := rowstore.Open(command.db, rowstore.WithName("rowstore"))
	if err != nil {
		log.Fatalln(err)
	}
	defer db.Close()

	if err := run(context.Background(), db, args[0], args[1:]); err != nil {
		vlog.Errorf("%s: %v", args[0], err)
		log.Fatalln(err)
	}
}

func run(ctx context.Context, db *rowstore.DB, cmd string, args []string) error {
	switch cmd {
	case "log", "logs":
		entries, err := eventlog.New(db)
		if err != nil {
			return err
		}
		if cmd == "log" {
			if len(args) != 2 {
				return fmt.Errorf("usage: log NAME TEXT")
			}
			id, err := entries.LogInfo(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Println(id)
			return nil
		}
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		list, err := entries.GetLogEntries(ctx, name, command.limit)
		if err != nil {
			return err
		}
		for _, e := range list {
			created := ""
			if e.Created.Valid {
				created = e.Created.Time.Format(rowstore.TimeLayout)
			}
			fmt.Printf("%d\t%s\t%s\t%s\t%s\n", e.GetID(), created, e.Name, e.Type, e.Text)
		}
		return nil

	case "sysinfo-get", "sysinfo-set", "sysinfo-delete":
		store, err := sysinfo.New(db)
		if err != nil {
			return err
		}
		if len(args) == 0 {
			return fmt.Errorf("usage: %s NAME", cmd)
		}
		switch cmd {
		case "sysinfo-get":
			info, found, err := store.GetSysInfo(ctx, args[0])
			if err != nil {
				return err
			}
			if !found {
				return fmt.Errorf("no sys info saved as %q", args[0])
			}
			payload, err := sysinfo.Encode(info.Data)
			if err != nil {
				return err
			}
			fmt.Println(payload)
		case "sysinfo-set":
			if len(args) != 2 {
				return fmt.Errorf("usage: sysinfo-set NAME JSON")
			}
			data, err := sysinfo.Decode(args[1])
			if err != nil {
				return err
			}
			info, err := store.SaveSysInfo(ctx, args[0], data)
			if err != nil {
				return err
			}
			fmt.Println(info.GetID())
		case "sysinfo-delete":
			return store.DeleteSysInfo(ctx, args[0])
		}
		return nil
	}

	return fmt.Errorf("unknown command %q, want one of: %s", cmd,
		strings.Join([]string{"log", "logs", "sysinfo-get", "sysinfo-set", "sysinfo-delete"}, ", "))
}
