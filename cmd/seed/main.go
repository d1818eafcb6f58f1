// seed gera o script SQL que povoa o catálogo (produtos e planos) a partir
// de um arquivo YAML declarativo.
//
// Uso: go run ./cmd/seed [caminho/catalog.yaml]
// Por padrão procura catalog.yaml ao lado deste comando.
// Escreve: internal/infrastructure/postgres/migrations/002_seed_catalog.sql
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

type catalog struct {
	Products []seedProduct `mapstructure:"products"`
}

type seedProduct struct {
	ID       string     `mapstructure:"id"`
	Name     string     `mapstructure:"name"`
	BasePath string     `mapstructure:"base_path"`
	Plans    []seedPlan `mapstructure:"plans"`
}

type seedPlan struct {
	Slug              string         `mapstructure:"slug"`
	Name              string         `mapstructure:"name"`
	PriceMonthly      string         `mapstructure:"price_monthly"`
	PriceYearly       string         `mapstructure:"price_yearly"`
	YearlyDiscountPct string         `mapstructure:"yearly_discount_pct"`
	Features          []string       `mapstructure:"features"`
	Limits            map[string]int `mapstructure:"limits"`
}

func main() {
	path := filepath.Join("cmd", "seed", "catalog.yaml")
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Ler catálogo: %v\n", err)
		os.Exit(1)
	}
	var cat catalog
	if err := v.Unmarshal(&cat); err != nil {
		fmt.Fprintf(os.Stderr, "Decodificar catálogo: %v\n", err)
		os.Exit(1)
	}
	if len(cat.Products) == 0 {
		fmt.Fprintln(os.Stderr, "Catálogo vazio: nenhum produto declarado")
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_catalog.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Criar arquivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	out.WriteString("-- Catálogo de produtos e planos do hub\n")
	out.WriteString("-- Gerado a partir de catalog.yaml; reexecutável (upsert)\n\n")

	planCount := 0
	for _, p := range cat.Products {
		if p.ID == "" || p.Name == "" || p.BasePath == "" {
			fmt.Fprintf(os.Stderr, "Produto inválido (id, name e base_path são obrigatórios): %+v\n", p)
			os.Exit(1)
		}
		fmt.Fprintf(out, "-- %s\n", p.Name)
		fmt.Fprintf(out, "INSERT INTO products (id, name, base_path, active, created_at, updated_at)\n")
		fmt.Fprintf(out, "VALUES ('%s', '%s', '%s', TRUE, now(), now())\n", escapeSQL(p.ID), escapeSQL(p.Name), escapeSQL(p.BasePath))
		out.WriteString("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name, base_path = EXCLUDED.base_path, updated_at = now();\n\n")

		for _, pl := range p.Plans {
			monthly, err := decimal.NewFromString(pl.PriceMonthly)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Preço mensal inválido em %s/%s: %v\n", p.ID, pl.Slug, err)
				os.Exit(1)
			}
			yearly := decimal.Zero
			if pl.PriceYearly != "" {
				if yearly, err = decimal.NewFromString(pl.PriceYearly); err != nil {
					fmt.Fprintf(os.Stderr, "Preço anual inválido em %s/%s: %v\n", p.ID, pl.Slug, err)
					os.Exit(1)
				}
			}
			discount := decimal.Zero
			if pl.YearlyDiscountPct != "" {
				if discount, err = decimal.NewFromString(pl.YearlyDiscountPct); err != nil {
					fmt.Fprintf(os.Stderr, "Desconto anual inválido em %s/%s: %v\n", p.ID, pl.Slug, err)
					os.Exit(1)
				}
			}
			features, _ := json.Marshal(pl.Features)
			if pl.Features == nil {
				features = []byte("[]")
			}
			limits, _ := json.Marshal(pl.Limits)
			if pl.Limits == nil {
				limits = []byte("{}")
			}

			// ID determinístico para o upsert ser estável entre execuções.
			planID := p.ID + "-" + pl.Slug
			fmt.Fprintf(out, "INSERT INTO plans (id, product_id, slug, name, price_monthly, price_yearly, yearly_discount_pct, features, limits, active, created_at, updated_at)\n")
			fmt.Fprintf(out, "VALUES ('%s', '%s', '%s', '%s', %s, %s, %s, '%s', '%s', TRUE, now(), now())\n",
				escapeSQL(planID), escapeSQL(p.ID), escapeSQL(pl.Slug), escapeSQL(pl.Name),
				monthly.StringFixed(2), yearly.StringFixed(2), discount.StringFixed(2),
				escapeSQL(string(features)), escapeSQL(string(limits)))
			out.WriteString("ON CONFLICT (product_id, slug) DO UPDATE SET name = EXCLUDED.name, price_monthly = EXCLUDED.price_monthly, price_yearly = EXCLUDED.price_yearly, yearly_discount_pct = EXCLUDED.yearly_discount_pct, features = EXCLUDED.features, limits = EXCLUDED.limits, updated_at = now();\n\n")
			planCount++
		}
	}

	fmt.Printf("Gerado %s: %d produtos, %d planos\n", outPath, len(cat.Products), planCount)
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
