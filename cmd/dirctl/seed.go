package main

import (
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/config"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/database"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/dto"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/repository"
	"github.com/ahmetcoskunkizilkaya/provider-directory/internal/services"
	"github.com/spf13/cobra"
)

type seedCategory struct {
	Name        string
	Description string
	Icon        string
	Synonyms    []string
}

var seedCategories = []seedCategory{
	{"Eletricista", "Serviços de instalação e manutenção elétrica", "Zap", []string{"eletricidade", "fiação", "luz", "energia"}},
	{"Encanador", "Serviços de encanamento e hidráulica", "Droplet", []string{"bombeiro", "hidráulica", "cano", "água"}},
	{"Pedreiro", "Serviços de alvenaria e construção", "Hammer", []string{"construção", "alvenaria", "obra", "reforma"}},
	{"Pintor", "Serviços de pintura e acabamento", "Palette", []string{"pintura", "tinta", "acabamento"}},
	{"Carpinteiro", "Serviços de carpintaria e marcenaria", "Hammer2", []string{"marcenaria", "madeira", "móvel", "porta"}},
	{"Diarista", "Serviços de limpeza e faxina", "Broom", []string{"limpeza", "faxina", "limpador", "faxineira"}},
	{"Professor Particular", "Aulas particulares e reforço escolar", "BookOpen", []string{"aula", "professor", "reforço", "educação"}},
	{"Motoboy", "Serviços de entrega e transporte", "Bike", []string{"entrega", "transporte", "moto", "courier"}},
	{"Mecânico", "Serviços de manutenção e reparo de veículos", "Wrench", []string{"carro", "moto", "reparo", "manutenção"}},
	{"Cabeleireiro", "Serviços de corte e tratamento capilar", "Scissors", []string{"cabelo", "corte", "cabelereiro", "salão"}},
}

var seedNeighborhoods = []string{
	"Centro",
	"Bairro da Paz",
	"Bairro do Rosário",
	"Bairro Novo",
	"Igarapé Mirim",
	"Igarapé Preto",
	"Jauari",
	"Paricatuba",
	"Prainha",
	"Ramal do Pau d'Arco",
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert reference categories and neighborhoods",
	Long:  "Insert the reference categories (with search synonyms) and neighborhoods.\nNames that already exist are skipped, so the command is safe to re-run.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		db := database.New(config.Load())
		defer db.Close()

		catalog := services.NewCatalogService(repository.New(db))
		ctx := cmd.Context()

		categories := 0
		for _, c := range seedCategories {
			description, icon := c.Description, c.Icon
			_, err := catalog.CreateCategory(ctx, &dto.CreateCategoryRequest{
				Name:        c.Name,
				Description: &description,
				Icon:        &icon,
				Synonyms:    c.Synonyms,
			})
			if skipped, err := seedResult(err); err != nil {
				return err
			} else if !skipped {
				categories++
			}
		}
		cmd.Printf("categories: %d inserted, %d skipped\n", categories, len(seedCategories)-categories)

		neighborhoods := 0
		for _, name := range seedNeighborhoods {
			_, err := catalog.CreateNeighborhood(ctx, &dto.CreateNeighborhoodRequest{Name: name})
			if skipped, err := seedResult(err); err != nil {
				return err
			} else if !skipped {
				neighborhoods++
			}
		}
		cmd.Printf("neighborhoods: %d inserted, %d skipped\n", neighborhoods, len(seedNeighborhoods)-neighborhoods)
		return nil
	},
}

// seedResult treats duplicates as skipped rows.
func seedResult(err error) (skipped bool, _ error) {
	if err == nil {
		return false, nil
	}
	if apperrors.Is(err, apperrors.CodeBadRequest) {
		return true, nil
	}
	return false, err
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
