package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/unkn0wn-root/keycache"
	"github.com/unkn0wn-root/keycache/database"
	zaplog "github.com/unkn0wn-root/keycache/log/zap"
)

type app struct {
	env    envConfig
	keys   string
	prefix string
	log    *zap.Logger
}

func newRootCmd(cfg envConfig) *cobra.Command {
	a := &app{env: cfg}
	root := &cobra.Command{
		Use:           "keycachectl",
		Short:         "Inspect keycache key configs and resolved redis keys",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			l, err := newLogger(a.env.LogLevel)
			if err != nil {
				return err
			}
			a.log = l
			return nil
		},
		PersistentPostRun: func(*cobra.Command, []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}
	root.PersistentFlags().StringVar(&a.keys, "keys", cfg.Keys, "key config file (.xml, .yaml)")
	root.PersistentFlags().StringVar(&a.prefix, "prefix", "", "key prefix")

	root.AddCommand(a.listCmd(), a.resolveCmd(), a.ttlCmd())
	return root
}

func (a *app) store() (*keycache.FileKeyStore, error) {
	if a.keys == "" {
		return nil, errors.New("--keys or KEYCACHE_KEYS is required")
	}
	return keycache.NewFileKeyStore(a.keys, keycache.KeyStoreOptions{Logger: zaplog.New(a.log)})
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every node/item config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.store()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NODE\tITEM\tKEY\tDB\tEXPIRE")
			for _, c := range s.Configs() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", c.Node, c.Item, c.Key, dbList(c.Db()), expireText(c.Expire))
			}
			return w.Flush()
		},
	}
}

func (a *app) resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <node> <item> [args...]",
		Short: "Print the redis key and shard db for node/item and args",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.store()
			if err != nil {
				return err
			}
			cfg, ok := s.Get(args[0], args[1])
			if !ok {
				return &keycache.KeyError{Node: args[0], Item: args[1], Err: keycache.ErrConfigNotFound}
			}
			r := keycache.NewResolver(cfg, a.prefix)
			key, err := r.Key(keyArgs(args[2:])...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "key\t%s\ndb\t%d\nexpire\t%s\n", key, r.DB(key), expireText(cfg.Expire))
			return nil
		},
	}
}

func (a *app) ttlCmd() *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "ttl <node> <item> [args...]",
		Short: "Query redis for the remaining TTL of a resolved key",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.store()
			if err != nil {
				return err
			}
			pool, err := database.New(database.Config{Options: &goredis.Options{
				Addr:     a.env.RedisAddr,
				Username: a.env.RedisUsername,
				Password: a.env.RedisPassword,
			}})
			if err != nil {
				return err
			}
			defer pool.Close()

			b, err := keycache.NewBase(args[0], args[1], pool, s, a.prefix)
			if err != nil {
				return err
			}
			kargs := keyArgs(args[2:])
			key, err := b.GetCacheKey(kargs...)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			ttl, err := b.TTL(ctx, kargs...)
			if err != nil {
				return err
			}
			a.log.Debug("ttl queried", zap.String("key", key), zap.Int("db", b.GetCacheDb(key)))
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", key, ttlText(ttl))
			return nil
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 5*time.Second, "redis timeout")
	return cmd
}

func keyArgs(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func dbList(dbs []int) string {
	if len(dbs) == 0 {
		return "-"
	}
	parts := make([]string, len(dbs))
	for i, d := range dbs {
		parts[i] = fmt.Sprint(d)
	}
	return strings.Join(parts, ",")
}

func expireText(d time.Duration) string {
	if d <= 0 {
		return "-"
	}
	return d.String()
}

func ttlText(d time.Duration) string {
	switch d {
	case -2:
		return "missing"
	case -1:
		return "no expiry"
	}
	return d.String()
}
