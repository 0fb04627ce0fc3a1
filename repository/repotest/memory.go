// Package repotest provee repositorios en memoria para pruebas de handlers
// y servicios. Imitan el comportamiento de los repositorios PostgreSQL:
// ids incrementales, orden por id, emails sin distinguir mayúsculas,
// ErrNotFound y ErrDuplicate.
package repotest

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/lizet96/consultorio-backend/models"
	"github.com/lizet96/consultorio-backend/repository"
)

// Store guarda todas las tablas en memoria
type Store struct {
	mu        sync.Mutex
	seq       map[string]int64
	pacientes map[int64]models.Paciente
	medicos   map[int64]models.Medico
	citas     map[int64]models.Cita
	usuarios  map[int64]models.Usuario
	tokens    map[int64]models.AccessToken

	// Err, si no es nil, lo devuelven todas las operaciones
	Err error
}

func New() *Store {
	return &Store{
		seq:       make(map[string]int64),
		pacientes: make(map[int64]models.Paciente),
		medicos:   make(map[int64]models.Medico),
		citas:     make(map[int64]models.Cita),
		usuarios:  make(map[int64]models.Usuario),
		tokens:    make(map[int64]models.AccessToken),
	}
}

func (s *Store) next(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

func (s *Store) Pacientes() repository.PacienteRepository { return pacienteRepo{s} }
func (s *Store) Medicos() repository.MedicoRepository     { return medicoRepo{s} }
func (s *Store) Citas() repository.CitaRepository         { return citaRepo{s} }
func (s *Store) Usuarios() repository.UsuarioRepository   { return usuarioRepo{s} }
func (s *Store) Tokens() repository.TokenRepository       { return tokenRepo{s} }

// TokenCount devuelve cuántos tokens tiene el usuario
func (s *Store) TokenCount(userID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tokens {
		if t.UserID == userID {
			n++
		}
	}
	return n
}

func sortedKeys[T any](m map[int64]T) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func paginate[T any](items []T, params models.PageParams) *models.Page[T] {
	total := int64(len(items))
	start := params.Offset()
	if start < 0 || start > len(items) {
		start = len(items)
	}
	end := start + params.PerPage
	if end > len(items) {
		end = len(items)
	}
	return models.NewPage(append([]T{}, items[start:end]...), params, total)
}

// --- pacientes ---

type pacienteRepo struct{ s *Store }

func (r pacienteRepo) Create(_ context.Context, p *models.Paciente) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	p.ID = r.s.next("pacientes")
	p.CreatedAt, p.UpdatedAt = time.Now(), time.Now()
	r.s.pacientes[p.ID] = *p
	return nil
}

func (r pacienteRepo) GetByID(_ context.Context, id int64) (*models.Paciente, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	p, ok := r.s.pacientes[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &p, nil
}

func (r pacienteRepo) Update(_ context.Context, p *models.Paciente) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	old, ok := r.s.pacientes[p.ID]
	if !ok {
		return repository.ErrNotFound
	}
	p.CreatedAt, p.UpdatedAt = old.CreatedAt, time.Now()
	r.s.pacientes[p.ID] = *p
	return nil
}

func (r pacienteRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.pacientes[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.pacientes, id)
	for cid, c := range r.s.citas {
		if c.PacienteID == id {
			delete(r.s.citas, cid)
		}
	}
	return nil
}

func (r pacienteRepo) List(ctx context.Context, params models.PageParams) (*models.Page[models.Paciente], error) {
	all, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	return paginate(all, params), nil
}

func (r pacienteRepo) All(_ context.Context) ([]models.Paciente, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := []models.Paciente{}
	for _, id := range sortedKeys(r.s.pacientes) {
		out = append(out, r.s.pacientes[id])
	}
	return out, nil
}

func (r pacienteRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return false, r.s.Err
	}
	_, ok := r.s.pacientes[id]
	return ok, nil
}

// --- medicos ---

type medicoRepo struct{ s *Store }

func (r medicoRepo) Create(_ context.Context, m *models.Medico) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	m.ID = r.s.next("medicos")
	m.CreatedAt, m.UpdatedAt = time.Now(), time.Now()
	r.s.medicos[m.ID] = *m
	return nil
}

func (r medicoRepo) GetByID(_ context.Context, id int64) (*models.Medico, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	m, ok := r.s.medicos[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &m, nil
}

func (r medicoRepo) Update(_ context.Context, m *models.Medico) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	old, ok := r.s.medicos[m.ID]
	if !ok {
		return repository.ErrNotFound
	}
	m.CreatedAt, m.UpdatedAt = old.CreatedAt, time.Now()
	r.s.medicos[m.ID] = *m
	return nil
}

func (r medicoRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.medicos[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.medicos, id)
	for cid, c := range r.s.citas {
		if c.MedicoID == id {
			delete(r.s.citas, cid)
		}
	}
	return nil
}

func (r medicoRepo) List(ctx context.Context, params models.PageParams) (*models.Page[models.Medico], error) {
	all, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	return paginate(all, params), nil
}

func (r medicoRepo) All(_ context.Context) ([]models.Medico, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := []models.Medico{}
	for _, id := range sortedKeys(r.s.medicos) {
		out = append(out, r.s.medicos[id])
	}
	return out, nil
}

func (r medicoRepo) Exists(_ context.Context, id int64) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return false, r.s.Err
	}
	_, ok := r.s.medicos[id]
	return ok, nil
}

// --- citas ---

type citaRepo struct{ s *Store }

func (r citaRepo) checkRefs(c *models.Cita) error {
	if _, ok := r.s.pacientes[c.PacienteID]; !ok {
		return fmt.Errorf("%w: citas_paciente_id_fkey", repository.ErrInvalidReference)
	}
	if _, ok := r.s.medicos[c.MedicoID]; !ok {
		return fmt.Errorf("%w: citas_medico_id_fkey", repository.ErrInvalidReference)
	}
	return nil
}

func (r citaRepo) detalle(c models.Cita) models.CitaDetalle {
	return models.CitaDetalle{
		Cita:     c,
		Paciente: r.s.pacientes[c.PacienteID].Nombre,
		Medico:   r.s.medicos[c.MedicoID].Nombre,
	}
}

func (r citaRepo) Create(_ context.Context, c *models.Cita) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if err := r.checkRefs(c); err != nil {
		return err
	}
	c.ID = r.s.next("citas")
	c.CreatedAt, c.UpdatedAt = time.Now(), time.Now()
	r.s.citas[c.ID] = *c
	return nil
}

func (r citaRepo) GetByID(_ context.Context, id int64) (*models.CitaDetalle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	c, ok := r.s.citas[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	d := r.detalle(c)
	return &d, nil
}

func (r citaRepo) Update(_ context.Context, c *models.Cita) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	old, ok := r.s.citas[c.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if err := r.checkRefs(c); err != nil {
		return err
	}
	c.CreatedAt, c.UpdatedAt = old.CreatedAt, time.Now()
	r.s.citas[c.ID] = *c
	return nil
}

func (r citaRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.citas[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.s.citas, id)
	return nil
}

func (r citaRepo) List(ctx context.Context, params models.PageParams) (*models.Page[models.CitaDetalle], error) {
	all, err := r.All(ctx)
	if err != nil {
		return nil, err
	}
	return paginate(all, params), nil
}

func (r citaRepo) All(_ context.Context) ([]models.CitaDetalle, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	out := []models.CitaDetalle{}
	for _, id := range sortedKeys(r.s.citas) {
		out = append(out, r.detalle(r.s.citas[id]))
	}
	return out, nil
}

func (r citaRepo) CountByPaciente(_ context.Context) ([]models.ConteoCitas, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return r.countBy(func(c models.Cita) string { return r.s.pacientes[c.PacienteID].Nombre }), nil
}

func (r citaRepo) CountByMedico(_ context.Context) ([]models.ConteoCitas, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	return r.countBy(func(c models.Cita) string { return r.s.medicos[c.MedicoID].Nombre }), nil
}

func (r citaRepo) countBy(name func(models.Cita) string) []models.ConteoCitas {
	counts := make(map[string]int64)
	for _, c := range r.s.citas {
		counts[name(c)]++
	}
	out := make([]models.ConteoCitas, 0, len(counts))
	for nombre, n := range counts {
		out = append(out, models.ConteoCitas{Count: n, Nombre: nombre})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Nombre < out[j].Nombre })
	return out
}

// --- usuarios ---

type usuarioRepo struct{ s *Store }

func (r usuarioRepo) Create(_ context.Context, u *models.Usuario) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for _, existing := range r.s.usuarios {
		if strings.EqualFold(existing.Email, u.Email) {
			return fmt.Errorf("%w: users_email_key", repository.ErrDuplicate)
		}
	}
	u.ID = r.s.next("users")
	u.CreatedAt, u.UpdatedAt = time.Now(), time.Now()
	r.s.usuarios[u.ID] = *u
	return nil
}

func (r usuarioRepo) GetByEmail(_ context.Context, email string) (*models.Usuario, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, u := range r.s.usuarios {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r usuarioRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

// --- tokens ---

type tokenRepo struct{ s *Store }

func (r tokenRepo) Create(_ context.Context, t *models.AccessToken) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	for _, existing := range r.s.tokens {
		if existing.TokenID == t.TokenID {
			return fmt.Errorf("%w: personal_access_tokens_token_id_key", repository.ErrDuplicate)
		}
	}
	t.ID = r.s.next("tokens")
	t.CreatedAt = time.Now()
	r.s.tokens[t.ID] = *t
	return nil
}

func (r tokenRepo) GetByTokenID(_ context.Context, tokenID string) (*models.AccessToken, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	for _, t := range r.s.tokens {
		if t.TokenID == tokenID {
			return &t, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r tokenRepo) Touch(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if t, ok := r.s.tokens[id]; ok {
		now := time.Now()
		t.LastUsedAt = &now
		r.s.tokens[id] = t
	}
	return nil
}

func (r tokenRepo) DeleteByUser(_ context.Context, userID int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return 0, r.s.Err
	}
	var n int64
	for id, t := range r.s.tokens {
		if t.UserID == userID {
			delete(r.s.tokens, id)
			n++
		}
	}
	return n, nil
}
