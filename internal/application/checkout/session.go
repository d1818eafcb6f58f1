package checkout

import (
	"context"
	"sync"

	"github.com/upzy-app/hub-api/internal/application/dto"
	"github.com/upzy-app/hub-api/internal/domain/entity"
	"github.com/upzy-app/hub-api/pkg/card"
)

// State estado da máquina de checkout.
type State string

// Estados possíveis de uma sessão. loading-plan existe só durante Start;
// not-found, confirmed e pix-timeout são terminais.
const (
	StateLoadingPlan     State = "loading-plan"
	StateCollectingInput State = "collecting-input"
	StateSubmitting      State = "submitting"
	StateAwaitingPix     State = "awaiting-pix-confirmation"
	StateConfirmed       State = "confirmed"
	StateNotFound        State = "not-found"
	StatePixTimeout      State = "pix-timeout"
)

// Form valores normalizados do formulário. Os campos de cartão ficam aqui
// apenas em memória, pelo tempo de vida da sessão; nunca são ecoados nas
// respostas nem logados.
type Form struct {
	Name          string
	Email         string
	Document      string
	Phone         string
	PaymentMethod string // card | pix
	CardNumber    string
	CardHolder    string
	CardExpiry    string
	CardCVV       string
	CEP           string
	Street        string
	Neighborhood  string
	City          string
	State         string
	AddressNumber string
}

// Session uma tentativa de checkout: um plano/ciclo por sessão, posse
// exclusiva de um fluxo. Criada no Start, destruída no Close ou expirada.
type Session struct {
	mu sync.Mutex

	ID        string
	State     State
	CompanyID string
	Product   *entity.Product
	Plan      *entity.Plan
	Cycle     string // monthly | yearly

	Form      Form
	CardBrand card.Brand
	FieldErr  *dto.FieldError

	PaymentID        string
	PixQRCodeBase64  string
	PixCopyPasteCode string
	RedirectURL      string

	submitting bool
	cancelPoll context.CancelFunc
}

// stopPolling cancela o loop de polling PIX, se houver. Chamar com o lock.
func (s *Session) stopPolling() {
	if s.cancelPoll != nil {
		s.cancelPoll()
		s.cancelPoll = nil
	}
}

// Store guarda as sessões de checkout em memória. A sessão é efêmera e
// local a um fluxo; não há compartilhamento entre abas nem persistência.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewStore constrói o store vazio.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Put registra a sessão.
func (st *Store) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.ID] = s
}

// Get devolve a sessão ou nil.
func (st *Store) Get(id string) *Session {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.sessions[id]
}

// Remove apaga a sessão do store.
func (st *Store) Remove(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, id)
}
