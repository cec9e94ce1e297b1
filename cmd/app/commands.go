package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"bookcatalog/internal/config"
	"bookcatalog/internal/db"
	"bookcatalog/internal/httpapi"
	"bookcatalog/internal/network"
	"bookcatalog/internal/page"
	"bookcatalog/internal/service"
	"bookcatalog/internal/web"
)

// loadConfig is swapped in tests.
var loadConfig = config.Load

func newRootCmd(out io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "app",
		Short:         "Book catalog: web page, API server and command line client",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)

	root.AddCommand(
		newWebCmd(),
		newAPICmd(),
		newListCmd(),
		newAddCmd(),
		newDeleteCmd(),
	)
	return root
}

func newCatalogPage(cfg *config.Config, logger *log.Logger) (*page.Page, error) {
	client, err := network.NewClient(cfg.ProxyAddr, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	api := service.NewCatalogClient(client, cfg.APIURL)
	return page.New(api, page.NewRegions(), logger), nil
}

func newWebCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "web",
		Short: "Serve the catalog page",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			p, err := newCatalogPage(cfg, log.Default())
			if err != nil {
				return err
			}

			log.Printf("catalog page on %s, api %s", cfg.WebAddr, cfg.APIURL)
			return http.ListenAndServe(cfg.WebAddr, web.New(p, cfg.Genres, log.Default()).Handler())
		},
	}
}

func newAPICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "api",
		Short: "Serve the books API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			var store db.Repository
			switch cfg.Store {
			case "sqlite":
				s, err := db.Open(cfg.SQLitePath)
				if err != nil {
					return err
				}
				defer s.Close()
				log.Printf("sqlite: %s", cfg.SQLitePath)
				store = s
			default:
				store = db.NewMemoryStore()
			}

			log.Printf("books api on %s (store=%s)", cfg.APIAddr, cfg.Store)
			return http.ListenAndServe(cfg.APIAddr, httpapi.New(store, log.Default()).Handler())
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			client, err := network.NewClient(cfg.ProxyAddr, cfg.LogLevel)
			if err != nil {
				return err
			}

			books, err := service.NewCatalogClient(client, cfg.APIURL).List(cmd.Context())
			if err != nil {
				return err
			}
			if len(books) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), page.MsgNoBooks)
				return nil
			}
			for _, b := range books {
				fmt.Fprint(cmd.OutOrStdout(), b.String())
			}
			return nil
		},
	}
}

func newAddCmd() *cobra.Command {
	var form page.Form
	var year int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a book",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			p, err := newCatalogPage(cfg, log.New(cmd.ErrOrStderr(), "", log.LstdFlags))
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("year") {
				form.PublicationYear = strconv.Itoa(year)
			}
			if err := p.Submit(cmd.Context(), form); err != nil {
				if msg := page.Message(err); msg != "" {
					return errors.New(msg)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "added %q\n", form.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&form.Title, "title", "", "book title")
	cmd.Flags().StringVar(&form.Author, "author", "", "author name")
	cmd.Flags().IntVar(&year, "year", 0, "publication year")
	cmd.Flags().StringVar(&form.Genre, "genre", "", "genre")
	return cmd
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a book by id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			p, err := newCatalogPage(cfg, log.New(cmd.ErrOrStderr(), "", log.LstdFlags))
			if err != nil {
				return err
			}

			if err := p.Load(cmd.Context()); err != nil {
				return err
			}
			if err := p.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}
}
