package cli

import (
	"github.com/spf13/cobra"

	"sentinelwatch/internal/app"
)

var (
	simulateTitle     string
	simulateBody      string
	simulateEventType string
	simulateSourceURL string
	simulatePersist   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Processa um evento sintético pelo pipeline completo",
	RunE: func(cmd *cobra.Command, args []string) error {
		return getApp().SimulateEvent(cmd.Context(), app.SimulateOptions{
			Title:     simulateTitle,
			Body:      simulateBody,
			EventType: simulateEventType,
			SourceURL: simulateSourceURL,
			Persist:   simulatePersist,
		})
	},
}

func init() {
	simulateCmd.Flags().StringVar(&simulateTitle, "title", "", "Título do evento simulado")
	simulateCmd.Flags().StringVar(&simulateBody, "body", "", "Corpo ou descrição do evento")
	simulateCmd.Flags().StringVar(&simulateEventType, "type", "", "Tipo do evento (financial, geopolitical, odds)")
	simulateCmd.Flags().StringVar(&simulateSourceURL, "source-url", "", "URL de origem usada na detecção de região e fonte social")
	simulateCmd.Flags().BoolVar(&simulatePersist, "persist", false, "Também grava evento e predição no banco")
}
