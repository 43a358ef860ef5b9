// Package compiler переводит модель сущностей в документ схемы Prisma.
//
// Компиляция — чистая синхронная функция: без I/O и общего состояния,
// один и тот же вход всегда даёт побайтно одинаковый текст.
// Ссылочная целостность (цель Lookup, наполнение enum'ов) не проверяется —
// это делает парсер схемы ниже по потоку.
package compiler

import (
	"schemagen/internal/entity"
	"schemagen/internal/prisma"

	"go.uber.org/zap"
)

const (
	DefaultDataSourceName    = "postgres"
	DefaultURLEnvVar         = "POSTGRESQL_URL"
	DefaultGeneratorName     = "client"
	DefaultGeneratorProvider = "prisma-client-js"
	LegacySystemModelName    = "User"
)

type Options struct {
	// IncludeLegacySystemModel добавляет первой модель User{username, password}.
	// Историческое поведение; выключается, когда миграция на нормальных пользователей закончится.
	IncludeLegacySystemModel bool
	DataSourceName           string
	URLEnvVar                string
	GeneratorName            string
	GeneratorProvider        string
}

func DefaultOptions() Options {
	return Options{
		IncludeLegacySystemModel: true,
		DataSourceName:           DefaultDataSourceName,
		URLEnvVar:                DefaultURLEnvVar,
		GeneratorName:            DefaultGeneratorName,
		GeneratorProvider:        DefaultGeneratorProvider,
	}
}

type Compiler struct {
	opts Options
	log  *zap.Logger
}

type Option func(*Compiler)

func WithLogger(l *zap.Logger) Option {
	return func(c *Compiler) {
		if l != nil {
			c.log = l
		}
	}
}

// New — пустые строковые опции добиваются значениями по умолчанию.
func New(opts Options, options ...Option) *Compiler {
	def := DefaultOptions()
	if opts.DataSourceName == "" {
		opts.DataSourceName = def.DataSourceName
	}
	if opts.URLEnvVar == "" {
		opts.URLEnvVar = def.URLEnvVar
	}
	if opts.GeneratorName == "" {
		opts.GeneratorName = def.GeneratorName
	}
	if opts.GeneratorProvider == "" {
		opts.GeneratorProvider = def.GeneratorProvider
	}
	c := &Compiler{opts: opts, log: zap.NewNop()}
	for _, o := range options {
		o(c)
	}
	return c
}

// LegacySystemModel — модель User, которую исторически вставляли в каждую схему.
func LegacySystemModel() prisma.Model {
	username := prisma.NewScalarField("username", prisma.String)
	username.IsUnique = true
	return prisma.NewModel(LegacySystemModelName,
		username,
		prisma.NewScalarField("password", prisma.String),
	)
}

// BuildModel собирает модель сущности; порядок полей сохраняется.
func BuildModel(e *entity.Entity) (prisma.Model, error) {
	fields := make([]prisma.Field, 0, len(e.Fields))
	for _, f := range e.Fields {
		pf, err := MapField(f)
		if err != nil {
			return prisma.Model{}, entity.WithEntity(err, e.Name)
		}
		fields = append(fields, pf)
	}
	return prisma.NewModel(e.Name, fields...), nil
}

// Document строит AST схемы. Любая ошибка поля отменяет всю компиляцию.
func (c *Compiler) Document(entities []*entity.Entity) (*prisma.Schema, error) {
	models := make([]prisma.Model, 0, len(entities)+1)
	if c.opts.IncludeLegacySystemModel {
		models = append(models, LegacySystemModel())
	}
	for _, e := range entities {
		m, err := BuildModel(e)
		if err != nil {
			c.log.Debug("compile aborted", zap.String("entity", e.Name), zap.Error(err))
			return nil, err
		}
		models = append(models, m)
	}

	enums, err := CollectEnums(entity.AllFields(entities))
	if err != nil {
		return nil, err
	}

	doc := &prisma.Schema{
		Generators: []prisma.Generator{prisma.NewGenerator(c.opts.GeneratorName, c.opts.GeneratorProvider)},
		DataSource: prisma.DataSource{
			Name:     c.opts.DataSourceName,
			Provider: prisma.PostgreSQL,
			URL:      prisma.EnvURL{Variable: c.opts.URLEnvVar},
		},
		Enums:  enums,
		Models: models,
	}
	c.log.Debug("schema compiled",
		zap.Int("entities", len(entities)),
		zap.Int("models", len(models)),
		zap.Int("enums", len(enums)),
	)
	return doc, nil
}

// Compile возвращает текст схемы; при ошибке — пустую строку.
func (c *Compiler) Compile(entities []*entity.Entity) (string, error) {
	doc, err := c.Document(entities)
	if err != nil {
		return "", err
	}
	return prisma.Print(doc), nil
}

// Compile с опциями по умолчанию.
func Compile(entities []*entity.Entity) (string, error) {
	return New(DefaultOptions()).Compile(entities)
}
