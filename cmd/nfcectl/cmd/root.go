// Package cmd implementa os subcomandos do nfcectl, utilitário de linha de
// comando para inspeção de chaves de acesso, QR Codes e XMLs de NFC-e.
package cmd

import (
	"github.com/spf13/cobra"
)

var (
	version = "1.0.0"

	// Flags globais
	formatoSaida string
)

var rootCmd = &cobra.Command{
	Use:   "nfcectl",
	Short: "Ferramentas de inspeção de NFC-e",
	Long: `nfcectl é um utilitário de linha de comando para trabalhar com
documentos NFC-e fora da API: valida e decompõe chaves de acesso,
confere URLs de QR Code e extrai a chave de arquivos XML.

Exemplos:
  # Validar uma chave de acesso
  nfcectl chave validar 35240312345678000199650010000000011100000000

  # Decompor os campos da chave
  nfcectl chave inspecionar 35240312345678000199650010000000011100000000

  # Extrair a chave de um XML autorizado
  nfcectl xml chave nota.xml

  # Conferir a URL do QR Code contra a chave
  nfcectl qrcode validar "https://.../qrcode?p=..." --chave 3524...`,
	Version: version,
}

// Execute roda o comando raiz.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&formatoSaida, "formato", "f", "texto", "Formato de saída (texto, json)")
}
