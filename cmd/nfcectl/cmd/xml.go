package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	domnfce "github.com/setxpro/nfce-api/internal/domain/nfce"
	"github.com/setxpro/nfce-api/internal/infrastructure/sefaz"
)

var xmlCmd = &cobra.Command{
	Use:   "xml",
	Short: "Inspeciona arquivos XML de NFC-e",
}

var xmlChaveCmd = &cobra.Command{
	Use:   "chave [arquivos...]",
	Short: "Extrai a chave de acesso de arquivos XML",
	Long: `Extrai e valida a chave de acesso (atributo Id do infNFe) de um ou
mais arquivos XML de NFC-e. Também informa o protocolo de autorização
quando o XML contém o bloco protNFe.

Exemplos:
  nfcectl xml chave nota.xml
  nfcectl xml chave *.xml -f json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runXMLChave,
}

func init() {
	rootCmd.AddCommand(xmlCmd)
	xmlCmd.AddCommand(xmlChaveCmd)
}

// ResultadoXML chave extraída de um arquivo.
type ResultadoXML struct {
	Arquivo   string `json:"arquivo"`
	Chave     string `json:"chave,omitempty"`
	Protocolo string `json:"protocolo,omitempty"`
	Erro      string `json:"erro,omitempty"`
}

func runXMLChave(cmd *cobra.Command, args []string) error {
	chaves := domnfce.NewChaveAcessoService()
	parser := sefaz.NewXMLParserService(chaves)

	resultados := make([]ResultadoXML, 0, len(args))
	houveErro := false

	for _, arquivo := range args {
		r := ResultadoXML{Arquivo: arquivo}
		dados, err := os.ReadFile(arquivo)
		if err != nil {
			r.Erro = err.Error()
			houveErro = true
			resultados = append(resultados, r)
			continue
		}
		chave, err := parser.ExtrairChave(string(dados))
		if err != nil {
			r.Erro = err.Error()
			houveErro = true
			resultados = append(resultados, r)
			continue
		}
		r.Chave = chave
		if protocolo, err := parser.ExtrairProtocolo(string(dados)); err == nil {
			r.Protocolo = protocolo
		}
		resultados = append(resultados, r)
	}

	if formatoSaida == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(resultados); err != nil {
			return err
		}
	} else {
		for _, r := range resultados {
			if r.Erro != "" {
				fmt.Printf("✗ %s: %s\n", r.Arquivo, r.Erro)
				continue
			}
			fmt.Printf("✓ %s: %s\n", r.Arquivo, chaves.Formatar(r.Chave))
			if r.Protocolo != "" {
				fmt.Printf("  protocolo: %s\n", r.Protocolo)
			}
		}
	}

	if houveErro {
		return fmt.Errorf("falha ao extrair a chave de um ou mais arquivos")
	}
	return nil
}
