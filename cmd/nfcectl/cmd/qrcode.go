package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	domnfce "github.com/setxpro/nfce-api/internal/domain/nfce"
)

var qrcodeChave string

var qrcodeCmd = &cobra.Command{
	Use:   "qrcode",
	Short: "Confere URLs de QR Code de NFC-e",
}

var qrcodeValidarCmd = &cobra.Command{
	Use:   "validar [url]",
	Short: "Valida a URL do QR Code contra a chave de acesso",
	Long: `Decodifica o parâmetro ?p= da URL do QR Code e confere o payload
contra a chave de acesso informada.

Exemplo:
  nfcectl qrcode validar "https://.../qrcode?p=MzUyNDAz..." \
      --chave 35240312345678000199650010000000011100000000`,
	Args: cobra.ExactArgs(1),
	RunE: runQrcodeValidar,
}

func init() {
	rootCmd.AddCommand(qrcodeCmd)
	qrcodeCmd.AddCommand(qrcodeValidarCmd)

	qrcodeValidarCmd.Flags().StringVar(&qrcodeChave, "chave", "", "Chave de acesso esperada (44 dígitos)")
	_ = qrcodeValidarCmd.MarkFlagRequired("chave")
}

func runQrcodeValidar(cmd *cobra.Command, args []string) error {
	chaves := domnfce.NewChaveAcessoService()
	if !chaves.Validar(qrcodeChave) {
		return fmt.Errorf("chave inválida: %s", qrcodeChave)
	}

	// A URL base não participa da conferência do payload.
	qrcode := domnfce.NewQrCodeService("")
	if !qrcode.ValidarURL(args[0], qrcodeChave) {
		return fmt.Errorf("URL de QR Code não confere com a chave %s", qrcodeChave)
	}
	fmt.Println("✓ QR Code confere com a chave de acesso")
	return nil
}
