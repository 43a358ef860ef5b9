package api

import (
	"database/sql"
	"io"
	"math/rand"
	"sync"
	"time"

	"schemagen/internal/compiler"
	"schemagen/internal/entity"
	"schemagen/internal/pg"
	"schemagen/internal/prisma"
	"schemagen/internal/reference"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

// Revision — результат одной компиляции загруженной модели
type Revision struct {
	ID         string    `json:"id"`
	CompiledAt time.Time `json:"compiledAt"`
	Entities   int       `json:"entities"`
	Models     int       `json:"models"`
	Enums      int       `json:"enums"`
	Schema     string    `json:"-"`
	DDL        []string  `json:"-"`
	// DDLError: документ скомпилирован, но в Postgres его спроецировать нельзя
	DDLError string `json:"ddlError,omitempty"`
}

type Storage struct {
	mu         sync.RWMutex
	Entities   []*entity.Entity
	OptionSets reference.Catalog
	current    *Revision

	compiler *compiler.Compiler
	opts     compiler.Options
	DB       *sql.DB // nil — без базы
	log      *zap.Logger
	entropy  io.Reader
	entMu    sync.Mutex // ulid.Monotonic не потокобезопасен
}

// NewStorage компилирует модель; при ошибке компиляции storage не создаётся.
func NewStorage(entities []*entity.Entity, optionSets reference.Catalog, opts compiler.Options, log *zap.Logger) (*Storage, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if optionSets == nil {
		optionSets = reference.Catalog{}
	}
	src := rand.New(rand.NewSource(time.Now().UnixNano()))
	s := &Storage{
		opts:     opts,
		compiler: compiler.New(opts, compiler.WithLogger(log)),
		log:      log,
		entropy:  ulid.Monotonic(src, 0),
	}
	if _, err := s.Replace(entities, optionSets); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Storage) newID() string {
	s.entMu.Lock()
	defer s.entMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

// build компилирует без блокировок; чистая функция от входа.
func (s *Storage) build(entities []*entity.Entity) (*Revision, error) {
	doc, err := s.compiler.Document(entities)
	if err != nil {
		return nil, err
	}
	rev := &Revision{
		ID:         s.newID(),
		CompiledAt: time.Now().UTC(),
		Entities:   len(entities),
		Models:     len(doc.Models),
		Enums:      len(doc.Enums),
		Schema:     prisma.Print(doc),
	}
	if ddl, err := pg.GenerateDDL(doc); err != nil {
		rev.DDLError = err.Error()
	} else {
		rev.DDL = ddl
	}
	return rev, nil
}

// Replace компилирует новую модель и только при успехе атомарно подменяет текущую.
func (s *Storage) Replace(entities []*entity.Entity, optionSets reference.Catalog) (*Revision, error) {
	rev, err := s.build(entities)
	if err != nil {
		s.log.Warn("compile failed, keeping previous revision", zap.Error(err))
		return nil, err
	}

	s.mu.Lock()
	s.Entities = entities
	s.OptionSets = optionSets
	s.current = rev
	s.mu.Unlock()

	s.log.Info("schema revision compiled",
		zap.String("revision", rev.ID),
		zap.Int("entities", rev.Entities),
		zap.Int("models", rev.Models),
		zap.Int("enums", rev.Enums),
		zap.String("ddl_error", rev.DDLError))
	return rev, nil
}

// Current — текущая ревизия (не мутировать).
func (s *Storage) Current() *Revision {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Snapshot — сущности и справочники текущей ревизии.
func (s *Storage) Snapshot() ([]*entity.Entity, reference.Catalog) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Entities, s.OptionSets
}

// Options — опции компилятора, с которыми собран storage.
func (s *Storage) Options() compiler.Options { return s.opts }
