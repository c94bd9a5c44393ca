package docapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/compras-api/internal/domain"
	"github.com/jhoicas/compras-api/internal/domain/entity"
	"github.com/jhoicas/compras-api/internal/domain/repository"
	"github.com/jhoicas/compras-api/pkg/config"
)

// Verificar en tiempo de compilación que Client implementa PurchaseRepository.
var _ repository.PurchaseRepository = (*Client)(nil)

const (
	collection   = "compras"
	maxBodyBytes = 8 << 20
)

// Client adaptador de PurchaseRepository sobre la API de documentos genérica
// ({base}/api/{database}/compras). Usa net/http de la librería estándar.
type Client struct {
	baseURL      string
	database     string
	updateMethod string
	token        string
	httpClient   *http.Client
	log          zerolog.Logger
}

// NewClient construye el cliente. Un UpdateMethod vacío equivale a PATCH.
func NewClient(cfg config.DocAPIConfig, log zerolog.Logger) *Client {
	method := strings.ToUpper(cfg.UpdateMethod)
	if method != http.MethodPut {
		method = http.MethodPatch
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		database:     cfg.Database,
		updateMethod: method,
		token:        cfg.Token,
		httpClient:   &http.Client{Timeout: timeout},
		log:          log,
	}
}

// errorBody campos de error que devuelve el backend.
type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// createdBody respuesta de POST: el id puede venir en data._id o en _id.
type createdBody struct {
	ID   string `json:"_id"`
	Data *struct {
		ID string `json:"_id"`
	} `json:"data"`
}

func (c *Client) collectionURL() string {
	return fmt.Sprintf("%s/api/%s/%s", c.baseURL, url.PathEscape(c.database), collection)
}

func (c *Client) documentURL(id string) string {
	return c.collectionURL() + "/" + url.PathEscape(id)
}

// List devuelve todos los documentos de la colección.
func (c *Client) List(ctx context.Context) ([]*entity.Purchase, error) {
	return c.list(ctx, c.collectionURL())
}

// FindBySequence busca por idCompra con el filtro ?idCompra=N.
// El resultado se filtra también localmente por si el backend ignora el parámetro.
func (c *Client) FindBySequence(ctx context.Context, sequenceID int) (*entity.Purchase, error) {
	q := url.Values{}
	q.Set("idCompra", strconv.Itoa(sequenceID))
	list, err := c.list(ctx, c.collectionURL()+"?"+q.Encode())
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		if p.SequenceID == sequenceID {
			return p, nil
		}
	}
	return nil, nil
}

func (c *Client) list(ctx context.Context, endpoint string) ([]*entity.Purchase, error) {
	status, body, err := c.do(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	if err := statusError(status, body); err != nil {
		return nil, err
	}
	var list []*entity.Purchase
	if err := json.Unmarshal(unwrapData(body), &list); err != nil {
		return nil, fmt.Errorf("%w: respuesta de listado inválida: %v", domain.ErrBackend, err)
	}
	return list, nil
}

// GetByID obtiene un documento por _id. 404 devuelve (nil, nil).
func (c *Client) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	status, body, err := c.do(ctx, http.MethodGet, c.documentURL(id), nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, nil
	}
	if err := statusError(status, body); err != nil {
		return nil, err
	}
	var p entity.Purchase
	if err := json.Unmarshal(unwrapData(body), &p); err != nil {
		return nil, fmt.Errorf("%w: documento inválido: %v", domain.ErrBackend, err)
	}
	if p.ID == "" {
		p.ID = id
	}
	return &p, nil
}

// Create inserta el documento. Si la respuesta no trae _id se busca por idCompra.
func (c *Client) Create(ctx context.Context, purchase *entity.Purchase) (string, error) {
	payload := *purchase
	payload.ID = ""
	status, body, err := c.do(ctx, http.MethodPost, c.collectionURL(), &payload)
	if err != nil {
		return "", err
	}
	if err := statusError(status, body); err != nil {
		return "", err
	}

	var created createdBody
	if len(bytes.TrimSpace(body)) > 0 {
		if err := json.Unmarshal(body, &created); err != nil {
			c.log.Warn().Err(err).Msg("respuesta de creación no es JSON; se buscará por idCompra")
		}
	}
	if created.Data != nil && created.Data.ID != "" {
		return created.Data.ID, nil
	}
	if created.ID != "" {
		return created.ID, nil
	}

	found, err := c.FindBySequence(ctx, purchase.SequenceID)
	if err != nil {
		return "", fmt.Errorf("recuperar id de la compra %d: %w", purchase.SequenceID, err)
	}
	if found == nil {
		return "", nil
	}
	c.log.Debug().Int("id_compra", purchase.SequenceID).Str("id", found.ID).Msg("id recuperado por idCompra")
	return found.ID, nil
}

// Update reemplaza el documento con el método configurado (PATCH o PUT). El _id no viaja en el cuerpo.
func (c *Client) Update(ctx context.Context, id string, purchase *entity.Purchase) error {
	payload := *purchase
	payload.ID = ""
	status, body, err := c.do(ctx, c.updateMethod, c.documentURL(id), &payload)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return domain.ErrNotFound
	}
	return statusError(status, body)
}

func (c *Client) do(ctx context.Context, method, endpoint string, payload any) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("docapi: serializar documento: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("docapi: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, nil, fmt.Errorf("docapi: timeout o cancelación: %w", ctx.Err())
		}
		return 0, nil, fmt.Errorf("%w: %s %s: %v", domain.ErrBackend, method, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, nil, fmt.Errorf("docapi: leer respuesta: %w", err)
	}
	c.log.Debug().
		Str("method", method).
		Str("url", endpoint).
		Int("status", resp.StatusCode).
		Dur("latency", time.Since(start)).
		Msg("docapi")
	return resp.StatusCode, body, nil
}

// statusError convierte una respuesta no 2xx en error con el mensaje del backend.
func statusError(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	msg := http.StatusText(status)
	var eb errorBody
	if json.Unmarshal(body, &eb) == nil {
		if eb.Message != "" {
			msg = eb.Message
		} else if eb.Error != "" {
			msg = eb.Error
		}
	}
	if status == http.StatusConflict {
		return fmt.Errorf("%w: %s", domain.ErrDuplicate, msg)
	}
	return fmt.Errorf("%w: HTTP %d: %s", domain.ErrBackend, status, msg)
}

// unwrapData devuelve el contenido de {"data": ...} si el backend envuelve la respuesta.
func unwrapData(body []byte) []byte {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}
	var env map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return trimmed
	}
	if data, ok := env["data"]; ok && len(data) > 0 {
		return data
	}
	return trimmed
}
