package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	domnfce "github.com/setxpro/nfce-api/internal/domain/nfce"
	"github.com/setxpro/nfce-api/pkg/fiscal"
)

var chaveCmd = &cobra.Command{
	Use:   "chave",
	Short: "Valida, formata e decompõe chaves de acesso",
}

var chaveValidarCmd = &cobra.Command{
	Use:   "validar [chaves...]",
	Short: "Valida o dígito verificador de chaves de acesso",
	Long: `Valida uma ou mais chaves de acesso de 44 dígitos: comprimento,
caracteres e dígito verificador (módulo 11).

Exemplos:
  nfcectl chave validar 35240312345678000199650010000000011100000000
  nfcectl chave validar chave1 chave2 -f json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runChaveValidar,
}

var chaveFormatarCmd = &cobra.Command{
	Use:   "formatar [chave]",
	Short: "Formata a chave em grupos de 4 dígitos",
	Args:  cobra.ExactArgs(1),
	RunE:  runChaveFormatar,
}

var chaveInspecionarCmd = &cobra.Command{
	Use:   "inspecionar [chave]",
	Short: "Decompõe a chave nos campos que a compõem",
	Long: `Decompõe a chave de acesso nos campos posicionais: UF, competência
(AAMM), CNPJ do emitente, modelo, série, número, tipo de emissão,
código numérico e dígito verificador.`,
	Args: cobra.ExactArgs(1),
	RunE: runChaveInspecionar,
}

func init() {
	rootCmd.AddCommand(chaveCmd)
	chaveCmd.AddCommand(chaveValidarCmd)
	chaveCmd.AddCommand(chaveFormatarCmd)
	chaveCmd.AddCommand(chaveInspecionarCmd)
}

// ResultadoChave resultado da validação de uma chave.
type ResultadoChave struct {
	Chave  string `json:"chave"`
	Valida bool   `json:"valida"`
}

func runChaveValidar(cmd *cobra.Command, args []string) error {
	chaves := domnfce.NewChaveAcessoService()
	resultados := make([]ResultadoChave, 0, len(args))
	todasValidas := true

	for _, chave := range args {
		valida := chaves.Validar(chave)
		resultados = append(resultados, ResultadoChave{Chave: chave, Valida: valida})
		if !valida {
			todasValidas = false
		}
	}

	if formatoSaida == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(resultados); err != nil {
			return err
		}
	} else {
		for _, r := range resultados {
			if r.Valida {
				fmt.Printf("✓ %s: VÁLIDA\n", r.Chave)
			} else {
				fmt.Printf("✗ %s: INVÁLIDA\n", r.Chave)
			}
		}
	}

	if !todasValidas {
		return fmt.Errorf("uma ou mais chaves são inválidas")
	}
	return nil
}

func runChaveFormatar(cmd *cobra.Command, args []string) error {
	chaves := domnfce.NewChaveAcessoService()
	chave := args[0]
	if !chaves.Validar(chave) {
		return fmt.Errorf("chave inválida: %s", chave)
	}
	fmt.Println(chaves.Formatar(chave))
	return nil
}

// CamposChave decomposição posicional da chave de acesso.
type CamposChave struct {
	Chave          string `json:"chave"`
	UF             string `json:"uf"`
	SiglaUF        string `json:"sigla_uf,omitempty"`
	Competencia    string `json:"competencia"` // AAMM
	Cnpj           string `json:"cnpj"`
	Modelo         string `json:"modelo"`
	Serie          string `json:"serie"`
	Numero         string `json:"numero"`
	TipoEmissao    string `json:"tipo_emissao"`
	CodigoNumerico string `json:"codigo_numerico"`
	DV             string `json:"dv"`
}

func runChaveInspecionar(cmd *cobra.Command, args []string) error {
	chaves := domnfce.NewChaveAcessoService()
	chave := args[0]
	if !chaves.Validar(chave) {
		return fmt.Errorf("chave inválida: %s", chave)
	}

	campos := CamposChave{
		Chave:          chave,
		UF:             chave[0:2],
		Competencia:    chave[2:6],
		Cnpj:           chave[6:20],
		Modelo:         chave[20:22],
		Serie:          chave[22:25],
		Numero:         chave[25:34],
		TipoEmissao:    chave[34:35],
		CodigoNumerico: chave[35:43],
		DV:             chave[43:44],
	}
	if codigo, err := strconv.Atoi(campos.UF); err == nil {
		campos.SiglaUF = fiscal.SiglaUF(codigo)
	}

	if formatoSaida == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(campos)
	}

	fmt.Printf("Chave:            %s\n", chaves.Formatar(chave))
	fmt.Printf("UF:               %s (%s)\n", campos.UF, campos.SiglaUF)
	fmt.Printf("Competência:      20%s/%s\n", campos.Competencia[0:2], campos.Competencia[2:4])
	fmt.Printf("CNPJ:             %s\n", campos.Cnpj)
	fmt.Printf("Modelo:           %s\n", campos.Modelo)
	fmt.Printf("Série:            %s\n", campos.Serie)
	fmt.Printf("Número:           %s\n", campos.Numero)
	fmt.Printf("Tipo de emissão:  %s\n", campos.TipoEmissao)
	fmt.Printf("Código numérico:  %s\n", campos.CodigoNumerico)
	fmt.Printf("DV:               %s\n", campos.DV)
	return nil
}
