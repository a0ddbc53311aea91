package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	survey "github.com/AlecAivazis/survey/v2"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	invoicegen "github.com/goliatone/go-invoicegen"
	"github.com/goliatone/go-invoicegen/pkg/model"
	"github.com/goliatone/go-invoicegen/pkg/render"
)

func main() {
	templatePath := flag.String("template", "", "template YAML file (built-in sections if empty)")
	dataPath := flag.String("data", "", "data context YAML file (prompted if empty)")
	output := flag.String("output", "invoice.html", "output HTML file")
	exporter := flag.String("exporter", "html", "exporter to use")
	verbose := flag.Bool("verbose", false, "log render diagnostics")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	if !*verbose {
		log = log.Level(zerolog.WarnLevel)
	}

	ctx := context.Background()

	tpl, err := loadTemplate(*templatePath)
	if err != nil {
		log.Fatal().Err(err).Msg("load template")
	}

	data, err := loadData(*dataPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load data context")
	}

	renderer, err := invoicegen.NewRenderer(render.WithLogger(log))
	if err != nil {
		log.Fatal().Err(err).Msg("init renderer")
	}

	doc, err := renderer.Render(ctx, tpl, data)
	if err != nil {
		log.Fatal().Err(err).Msg("render invoice")
	}

	registry := render.NewRegistry()
	registry.MustRegister(&render.HTMLExporter{Title: "Invoice " + data.Invoice.Number})

	exp, err := registry.Get(*exporter)
	if err != nil {
		log.Fatal().Err(err).Strs("available", registry.List()).Msg("unknown exporter")
	}
	if err := exp.Export(ctx, doc, *output); err != nil {
		log.Fatal().Err(err).Msg("export invoice")
	}

	fmt.Printf("Invoice written to %s\n", *output)
}

func loadTemplate(path string) (model.Template, error) {
	if path == "" {
		return invoicegen.DefaultTemplate(), nil
	}
	var tpl model.Template
	if err := unmarshalFile(path, &tpl); err != nil {
		return model.Template{}, err
	}
	return tpl, nil
}

func loadData(path string) (model.DataContext, error) {
	if path == "" {
		prompt := &survey.Input{
			Message: "Data context YAML file:",
			Help:    "Company, customer, deal, invoice and line item values.",
		}
		if err := survey.AskOne(prompt, &path, survey.WithValidator(survey.Required)); err != nil {
			return model.DataContext{}, err
		}
		path = strings.TrimSpace(path)
	}
	var fixture dataFixture
	if err := unmarshalFile(path, &fixture); err != nil {
		return model.DataContext{}, err
	}
	return fixture.toModel()
}

func unmarshalFile(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
