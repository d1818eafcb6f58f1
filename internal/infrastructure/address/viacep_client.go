// Package address implementa a consulta de endereço por CEP sobre a API
// pública estilo ViaCEP.
package address

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/upzy-app/hub-api/internal/application/checkout"
	"github.com/upzy-app/hub-api/internal/domain"
	"github.com/upzy-app/hub-api/pkg/config"
)

var _ checkout.AddressLookup = (*ViaCEPClient)(nil)

// ViaCEPClient cliente HTTP da consulta de CEP.
type ViaCEPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewViaCEPClient constrói o cliente. Timeout curto: a consulta roda durante
// a digitação do formulário e não pode travar o checkout.
func NewViaCEPClient(cfg config.AddressConfig) *ViaCEPClient {
	return &ViaCEPClient{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

type viaCEPResponse struct {
	CEP          string `json:"cep"`
	Street       string `json:"logradouro"`
	Neighborhood string `json:"bairro"`
	City         string `json:"localidade"`
	State        string `json:"uf"`
	Erro         bool   `json:"erro"` // true quando o CEP não existe
}

// Lookup resolve um CEP (8 dígitos, sem máscara). CEP inexistente devolve
// domain.ErrAddressNotFound.
func (c *ViaCEPClient) Lookup(ctx context.Context, cep string) (*checkout.Address, error) {
	url := fmt.Sprintf("%s/ws/%s/json/", c.baseURL, cep)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("montar consulta de CEP: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("consultar CEP: %w", err)
	}
	defer resp.Body.Close()

	// A API devolve 400 para CEP malformado e 200 com {"erro": true} para
	// CEP bem formado mas inexistente.
	if resp.StatusCode == http.StatusBadRequest {
		return nil, domain.ErrAddressNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("consultar CEP: HTTP %d", resp.StatusCode)
	}

	var out viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decodificar resposta de CEP: %w", err)
	}
	if out.Erro {
		return nil, domain.ErrAddressNotFound
	}

	return &checkout.Address{
		CEP:          out.CEP,
		Street:       out.Street,
		Neighborhood: out.Neighborhood,
		City:         out.City,
		State:        out.State,
	}, nil
}
