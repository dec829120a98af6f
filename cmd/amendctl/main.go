package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	httpin "freight/internal/adapters/in/http"
	"freight/internal/adapters/out/postgres"
	"freight/internal/adapters/out/postgres/shipmentrepo"
	"freight/internal/core/application/usecases/queries"
	"freight/internal/core/domain/model/actor"
	"freight/internal/core/domain/model/amendment"
	"freight/internal/core/domain/model/kernel"

	"github.com/jedib0t/go-pretty/v6/table"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "amendctl",
	Short: "Operator tool for the shipment amendment service",
	Long: `amendctl talks to the amendment database directly.

- migrate: apply the embedded schema migrations.
- token:   sign a development bearer token for an actor.
- seed:    create a shipment with a client and a winning vendor.
- list:    admin view of amendments.
- history: audit trail of one amendment.

Settings come from flags or AMEND_* environment variables (AMEND_DSN, AMEND_JWT_SECRET).`,
	SilenceUsage: true,
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("AMEND")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().String("dsn",
		"host=localhost port=5432 user=postgres dbname=amendments sslmode=disable", "postgres connection string")
	rootCmd.PersistentFlags().String("jwt-secret", "", "HS256 secret shared with the service")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	_ = viper.BindPFlag("dsn", rootCmd.PersistentFlags().Lookup("dsn"))
	_ = viper.BindPFlag("jwt-secret", rootCmd.PersistentFlags().Lookup("jwt-secret"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func registerCommands() {
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(tokenCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(historyCmd())
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSQL(cmd.Context(), func(ctx context.Context, db *sql.DB) error {
				applied, err := postgres.Migrate(ctx, db)
				if err != nil {
					return err
				}
				if len(applied) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
					return nil
				}
				fmt.Fprintf(cmd.OutOrStdout(), "applied migrations: %v\n", applied)
				return nil
			})
		},
	}
}

func tokenCmd() *cobra.Command {
	var actorID, role string
	var ttl time.Duration
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Print a signed bearer token for an actor",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := issueToken(viper.GetString("jwt-secret"), actorID, role, ttl, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&actorID, "actor", "", "actor UUID (token subject)")
	cmd.Flags().StringVar(&role, "role", "", "client, vendor or admin")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("actor")
	_ = cmd.MarkFlagRequired("role")
	return cmd
}

func issueToken(secret, actorID, role string, ttl time.Duration, now time.Time) (string, error) {
	if secret == "" {
		return "", errors.New("jwt secret is required (--jwt-secret or AMEND_JWT_SECRET)")
	}
	if ttl <= 0 {
		return "", fmt.Errorf("ttl must be positive, got %s", ttl)
	}
	id, err := kernel.UUIDFromString(actorID)
	if err != nil {
		return "", err
	}
	r, err := actor.RoleFromString(role)
	if err != nil {
		return "", err
	}
	who, err := actor.NewActor(id, r)
	if err != nil {
		return "", err
	}
	return httpin.IssueToken([]byte(secret), who, ttl, now)
}

type seedResult struct {
	ShipmentID string `json:"shipmentId"`
	ClientID   string `json:"clientId"`
	VendorID   string `json:"vendorId"`
	QuoteID    string `json:"quoteId"`
}

func seedCmd() *cobra.Command {
	var clientID, vendorID, amount string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a shipment owned by a client with a winning vendor quote",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGorm(cmd.Context(), func(ctx context.Context, db *gorm.DB) error {
				res, err := seed(ctx, db, clientID, vendorID, amount)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(cmd.OutOrStdout(), res)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(cmd.OutOrStdout())
				tw.AppendHeader(table.Row{"Shipment", "Client", "Vendor", "Quote"})
				tw.AppendRow(table.Row{res.ShipmentID, res.ClientID, res.VendorID, res.QuoteID})
				tw.Render()
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&clientID, "client", "", "client UUID (generated when empty)")
	cmd.Flags().StringVar(&vendorID, "vendor", "", "winning vendor UUID (generated when empty)")
	cmd.Flags().StringVar(&amount, "amount", "1000", "winning quote amount")
	return cmd
}

func seed(ctx context.Context, db *gorm.DB, clientID, vendorID, amount string) (seedResult, error) {
	client, err := uuidOrNew(clientID)
	if err != nil {
		return seedResult{}, err
	}
	vendor, err := uuidOrNew(vendorID)
	if err != nil {
		return seedResult{}, err
	}
	price, err := kernel.MoneyFromString(amount)
	if err != nil {
		return seedResult{}, err
	}

	shipmentID := kernel.NewUUID()
	var quoteID kernel.UUID
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := shipmentrepo.NewGormShipmentRepository(tx)
		if addErr := repo.Add(ctx, shipmentID, client); addErr != nil {
			return addErr
		}
		var quoteErr error
		quoteID, quoteErr = repo.AddQuote(ctx, shipmentID, vendor, price, true)
		return quoteErr
	})
	if err != nil {
		return seedResult{}, err
	}

	return seedResult{
		ShipmentID: shipmentID.String(),
		ClientID:   client.String(),
		VendorID:   vendor.String(),
		QuoteID:    quoteID.String(),
	}, nil
}

func uuidOrNew(s string) (kernel.UUID, error) {
	if s == "" {
		return kernel.NewUUID(), nil
	}
	return kernel.UUIDFromString(s)
}

func listCmd() *cobra.Command {
	var status string
	var limit, offset int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List amendments (admin view; default status requested)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGorm(cmd.Context(), func(ctx context.Context, db *gorm.DB) error {
				query, err := queries.NewListAmendmentsQuery(operator(), status, false, limit, offset)
				if err != nil {
					return err
				}
				page, err := queries.NewListAmendmentsQueryHandler(db).Handle(ctx, query)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(cmd.OutOrStdout(), toAmendmentViews(page.Items))
				}
				renderAmendments(cmd.OutOrStdout(), page.Items)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "status filter, or 'all'")
	cmd.Flags().IntVar(&limit, "limit", queries.DefaultPageLimit, "page size")
	cmd.Flags().IntVar(&offset, "offset", 0, "rows to skip")
	return cmd
}

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <amendment-id>",
		Short: "Show the audit trail of one amendment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := kernel.UUIDFromString(args[0])
			if err != nil {
				return err
			}
			return withGorm(cmd.Context(), func(ctx context.Context, db *gorm.DB) error {
				query, err := queries.NewGetAmendmentHistoryQuery(operator(), id)
				if err != nil {
					return err
				}
				entries, err := queries.NewGetAmendmentHistoryQueryHandler(db).Handle(ctx, query)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(cmd.OutOrStdout(), toHistoryViews(entries))
				}
				renderHistory(cmd.OutOrStdout(), entries)
				return nil
			})
		},
	}
}

// operator is the admin identity the CLI reads with.
func operator() actor.Actor {
	who, _ := actor.NewActor(kernel.NewUUID(), actor.Admin)
	return who
}

type amendmentView struct {
	ID         string    `json:"id"`
	ShipmentID string    `json:"shipmentId"`
	Status     string    `json:"status"`
	Reason     string    `json:"reason"`
	ExtraCost  string    `json:"extraCost,omitempty"`
	DelayDays  *int      `json:"delayDays,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func toAmendmentViews(items []amendment.Snapshot) []amendmentView {
	views := make([]amendmentView, len(items))
	for i, a := range items {
		views[i] = amendmentView{
			ID:         a.ID.String(),
			ShipmentID: a.ShipmentID.String(),
			Status:     a.Status.String(),
			Reason:     a.Reason,
			DelayDays:  a.DelayDays,
			CreatedAt:  a.CreatedAt,
		}
		if a.ExtraCost != nil {
			views[i].ExtraCost = a.ExtraCost.String()
		}
	}
	return views
}

type historyView struct {
	At     time.Time `json:"at"`
	From   string    `json:"from,omitempty"`
	To     string    `json:"to"`
	Action string    `json:"action"`
	Actor  string    `json:"actorId"`
	Role   string    `json:"actorRole"`
	Note   string    `json:"note,omitempty"`
}

func toHistoryViews(entries []amendment.HistoryEntry) []historyView {
	views := make([]historyView, len(entries))
	for i, e := range entries {
		views[i] = historyView{
			At:     e.At,
			To:     e.To.String(),
			Action: e.Action.String(),
			Actor:  e.ActorID.String(),
			Role:   e.ActorRole.String(),
			Note:   e.Note,
		}
		if e.From != amendment.Unknown {
			views[i].From = e.From.String()
		}
	}
	return views
}

func renderAmendments(w io.Writer, items []amendment.Snapshot) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"ID", "Shipment", "Status", "Reason", "Extra Cost", "Delay", "Created"})
	for _, v := range toAmendmentViews(items) {
		delay := ""
		if v.DelayDays != nil {
			delay = fmt.Sprintf("%dd", *v.DelayDays)
		}
		tw.AppendRow(table.Row{
			v.ID, v.ShipmentID, v.Status, v.Reason, v.ExtraCost, delay, v.CreatedAt.Format(time.RFC3339),
		})
	}
	tw.AppendFooter(table.Row{"", "", "", "", "", "Total", len(items)})
	tw.Render()
}

func renderHistory(w io.Writer, entries []amendment.HistoryEntry) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.AppendHeader(table.Row{"At", "From", "To", "Action", "Actor", "Role", "Note"})
	for _, v := range toHistoryViews(entries) {
		tw.AppendRow(table.Row{v.At.Format(time.RFC3339), v.From, v.To, v.Action, v.Actor, v.Role, v.Note})
	}
	tw.Render()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func withSQL(ctx context.Context, fn func(context.Context, *sql.DB) error) error {
	db, err := sql.Open("postgres", viper.GetString("dsn"))
	if err != nil {
		return err
	}
	defer db.Close()
	if err = db.PingContext(ctx); err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	return fn(ctx, db)
}

func withGorm(ctx context.Context, fn func(context.Context, *gorm.DB) error) error {
	return withSQL(ctx, func(ctx context.Context, sqlDB *sql.DB) error {
		db, err := gorm.Open(gorm_postgres.New(gorm_postgres.Config{Conn: sqlDB}), &gorm.Config{})
		if err != nil {
			return err
		}
		return fn(ctx, db)
	})
}
