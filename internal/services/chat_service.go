package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"mindzy/internal/models"
)

// DefaultMaxMessages caps user messages per chat session.
const DefaultMaxMessages = 10

const (
	FallbackReply     = "Lo siento, perdí la conexión momentáneamente. ¿Podemos intentar de nuevo?"
	ConnectionNotice  = "Hubo un error al conectar con el asistente."
	ConcernDisclaimer = "Recuerda que soy una IA de prueba. Si necesitas ayuda real, por favor contacta a un profesional en la sección de Psicólogos."
)

// SystemInstruction is the persona given to the model on every call.
const SystemInstruction = `
Eres un compañero de bienestar emocional para estudiantes universitarios llamado "Mindzy".
REGLAS DE PERSONALIDAD:
1. LENGUAJE NEUTRO POR DEFECTO: Empieza siempre con un español neutro y claro. NO uses jerga, modismos ni coloquialismos A MENOS QUE el usuario los use primero.
2. EFECTO ESPEJO: Solo si el usuario usa una palabra coloquial, tienes permiso para usarla sutilmente para conectar. Si el usuario es serio, mantente serio pero cercano.
3. CERO CONDESCENDENCIA: Habla de igual a igual. Prohibido usar frases de lástima o clichés clínicos como "Es comprensible", "Lamento escuchar eso", "Valido tus sentimientos" o "Pobrecito".
4. SIN DRAMA: Si el usuario está mal, no lo mires con pena. Normaliza la situación con frases simples como "A veces pasa" o "Esos días son pesados".

REGLAS DE RESTRICCIÓN:
1. TU ÚNICO PROPÓSITO es conversar, escuchar desahogos y hablar de estrés o emociones.
2. SI EL USUARIO PIDE ayuda con tareas, código, matemáticas, búsquedas, recetas, datos históricos o cualquier tema académico o técnico, DEBES NEGARTE AMABLEMENTE.
3. Ejemplo de negativa: "Me encantaría ayudarte, pero mi función es escucharte y apoyarte con tu estrés, no puedo resolver tareas académicas o buscar datos."
4. Mantén las respuestas breves y conversacionales (máximo 2-3 oraciones).
`

var concernKeywords = []string{"profesional", "ayuda psicológica", "terapia"}

// ChatClient is the external conversational model.
type ChatClient interface {
	Generate(ctx context.Context, systemPrompt string, history []models.ChatTurn, text string) (string, error)
}

// SupportLevelFor flags replies that point the user to professional help.
func SupportLevelFor(reply string) models.SupportLevel {
	lower := strings.ToLower(reply)
	for _, kw := range concernKeywords {
		if strings.Contains(lower, kw) {
			return models.SupportConcern
		}
	}
	return models.SupportNormal
}

// chatSession is one conversation. messages is the visible, append-only log;
// history is what the model has seen and only grows on successful exchanges.
type chatSession struct {
	mu sync.Mutex

	id         string
	deviceID   string
	state      models.ChatState
	count      int
	max        int
	messages   []models.ChatMessage
	history    []models.ChatTurn
	createdAt  time.Time
	lastActive time.Time
}

func (cs *chatSession) view() *models.ChatSessionView {
	msgs := make([]models.ChatMessage, len(cs.messages))
	copy(msgs, cs.messages)
	return &models.ChatSessionView{
		ID:           cs.id,
		State:        cs.state,
		MessageCount: cs.count,
		MaxMessages:  cs.max,
		Messages:     msgs,
		CreatedAt:    cs.createdAt,
	}
}

// ChatService owns the live chat sessions. Sessions live in memory only and
// end with the process or when evicted for inactivity.
type ChatService struct {
	client      ChatClient
	maxMessages int
	ttl         time.Duration
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*chatSession
}

func NewChatService(client ChatClient, maxMessages int, ttl time.Duration) *ChatService {
	if maxMessages <= 0 {
		maxMessages = DefaultMaxMessages
	}
	return &ChatService{
		client:      client,
		maxMessages: maxMessages,
		ttl:         ttl,
		now:         time.Now,
		sessions:    map[string]*chatSession{},
	}
}

func (s *ChatService) newMessage(text string, sender models.Sender, level models.SupportLevel) models.ChatMessage {
	m := models.ChatMessage{
		ID:           uuid.NewString(),
		Text:         text,
		Sender:       sender,
		Timestamp:    s.now(),
		SupportLevel: level,
	}
	if level == models.SupportConcern {
		m.Disclaimer = ConcernDisclaimer
	}
	return m
}

// StartSession opens a conversation seeded with the greeting.
func (s *ChatService) StartSession(deviceID, userName string) *models.ChatSessionView {
	now := s.now()
	cs := &chatSession{
		id:       uuid.NewString(),
		deviceID: deviceID,
		state:    models.ChatIdle,
		max:      s.maxMessages,
		history: []models.ChatTurn{
			{Role: "user", Text: fmt.Sprintf("Hola, soy %s.", userName)},
			{Role: "model", Text: fmt.Sprintf("Hola %s, estoy listo para escucharte.", userName)},
		},
		createdAt:  now,
		lastActive: now,
	}
	greeting := fmt.Sprintf("¡Hola %s! 👋 Soy tu espacio seguro. Estoy aquí para escucharte sin juzgar. ¿Qué tienes en mente hoy?", userName)
	cs.messages = append(cs.messages, s.newMessage(greeting, models.SenderBot, models.SupportNormal))

	s.mu.Lock()
	s.sessions[cs.id] = cs
	s.mu.Unlock()

	log.Printf("[chat][start] device=%s session=%s", deviceID, cs.id)
	return cs.view()
}

func (s *ChatService) lookup(deviceID, sessionID string) (*chatSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cs, ok := s.sessions[sessionID]
	if !ok || cs.deviceID != deviceID {
		return nil, ErrSessionNotFound
	}
	return cs, nil
}

func (s *ChatService) Get(deviceID, sessionID string) (*models.ChatSessionView, error) {
	cs, err := s.lookup(deviceID, sessionID)
	if err != nil {
		return nil, err
	}
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.view(), nil
}

// SendMessage runs one exchange. Every accepted message uses one unit of the
// session quota, whether or not the model answers.
func (s *ChatService) SendMessage(ctx context.Context, deviceID, sessionID, text string) (*models.SendResult, error) {
	cs, err := s.lookup(deviceID, sessionID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyMessage
	}

	cs.mu.Lock()
	if cs.count >= cs.max {
		cs.state = models.ChatLimitReached
		cs.mu.Unlock()
		return nil, ErrQuotaExhausted
	}
	if cs.state == models.ChatAwaitingResponse {
		cs.mu.Unlock()
		return nil, ErrAwaitingResponse
	}
	cs.count++
	userMsg := s.newMessage(text, models.SenderUser, "")
	cs.messages = append(cs.messages, userMsg)
	cs.state = models.ChatAwaitingResponse
	cs.lastActive = s.now()
	history := make([]models.ChatTurn, len(cs.history))
	copy(history, cs.history)
	cs.mu.Unlock()

	// the user cannot abort an exchange once it is in flight
	reply, genErr := s.client.Generate(context.WithoutCancel(ctx), SystemInstruction, history, text)

	cs.mu.Lock()
	defer cs.mu.Unlock()

	res := &models.SendResult{UserMessage: userMsg}
	if genErr != nil {
		log.Printf("[chat][send][err] device=%s session=%s: %v", deviceID, sessionID, genErr)
		res.BotMessage = s.newMessage(FallbackReply, models.SenderBot, models.SupportNormal)
		res.Notice = ConnectionNotice
	} else {
		res.BotMessage = s.newMessage(reply, models.SenderBot, SupportLevelFor(reply))
		cs.history = append(cs.history,
			models.ChatTurn{Role: "user", Text: text},
			models.ChatTurn{Role: "model", Text: reply},
		)
	}
	cs.messages = append(cs.messages, res.BotMessage)
	cs.lastActive = s.now()
	if cs.count >= cs.max {
		cs.state = models.ChatLimitReached
	} else {
		cs.state = models.ChatIdle
	}
	res.State = cs.state
	res.Remaining = cs.max - cs.count
	log.Printf("[chat][send][ok] device=%s session=%s count=%d/%d level=%s",
		deviceID, sessionID, cs.count, cs.max, res.BotMessage.SupportLevel)
	return res, nil
}

// EvictIdle drops sessions untouched for longer than the TTL. Sessions with
// a reply in flight are kept.
func (s *ChatService) EvictIdle() int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, cs := range s.sessions {
		cs.mu.Lock()
		stale := cs.lastActive.Before(cutoff) && cs.state != models.ChatAwaitingResponse
		cs.mu.Unlock()
		if stale {
			delete(s.sessions, id)
			n++
		}
	}
	return n
}

// RunJanitor evicts idle sessions until ctx is done.
func (s *ChatService) RunJanitor(ctx context.Context, every time.Duration) {
	if s.ttl <= 0 || every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := s.EvictIdle(); n > 0 {
				log.Printf("[chat][janitor] evicted=%d", n)
			}
		}
	}
}
