package services

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/lizet96/consultorio-backend/models"
	"github.com/lizet96/consultorio-backend/repository"
	"github.com/rs/zerolog"
)

var especialidades = []string{
	"Medicina General", "Pediatría", "Cardiología", "Dermatología", "Ginecología",
	"Neurología", "Oftalmología", "Traumatología", "Psiquiatría", "Otorrinolaringología",
}

// SeedCounts es la cantidad de registros de prueba a crear
type SeedCounts struct {
	Pacientes int
	Medicos   int
	Citas     int
}

// DefaultSeedCounts: 20 pacientes, 10 médicos y 20 citas
var DefaultSeedCounts = SeedCounts{Pacientes: 20, Medicos: 10, Citas: 20}

// Seeder llena la base con datos de prueba
type Seeder struct {
	pacientes repository.PacienteRepository
	medicos   repository.MedicoRepository
	citas     repository.CitaRepository
	faker     *gofakeit.Faker
	now       func() time.Time
	log       zerolog.Logger
}

// NewSeeder crea un Seeder. Con la misma semilla genera los mismos datos.
func NewSeeder(p repository.PacienteRepository, m repository.MedicoRepository, c repository.CitaRepository, seed uint64, logger zerolog.Logger) *Seeder {
	return &Seeder{
		pacientes: p,
		medicos:   m,
		citas:     c,
		faker:     gofakeit.New(seed),
		now:       time.Now,
		log:       logger,
	}
}

// Run crea los pacientes y médicos, y después citas que apuntan a ellos
// con fechas entre mañana y dentro de un mes.
func (s *Seeder) Run(ctx context.Context, counts SeedCounts) error {
	if counts.Citas > 0 && (counts.Pacientes == 0 || counts.Medicos == 0) {
		return fmt.Errorf("citas need at least one paciente and one medico")
	}

	pacienteIDs := make([]int64, 0, counts.Pacientes)
	for i := 0; i < counts.Pacientes; i++ {
		p := &models.Paciente{PacienteInput: models.PacienteInput{
			Nombre:          s.faker.FirstName(),
			Apellido:        s.faker.LastName(),
			Email:           s.faker.Email(),
			Telefono:        s.faker.Phone(),
			FechaNacimiento: s.faker.DateRange(s.now().AddDate(-90, 0, 0), s.now().AddDate(-1, 0, 0)).Format("2006-01-02"),
		}}
		if err := s.pacientes.Create(ctx, p); err != nil {
			return fmt.Errorf("seed paciente: %w", err)
		}
		pacienteIDs = append(pacienteIDs, p.ID)
	}

	medicoIDs := make([]int64, 0, counts.Medicos)
	for i := 0; i < counts.Medicos; i++ {
		m := &models.Medico{MedicoInput: models.MedicoInput{
			Nombre:       "Dr. " + s.faker.FirstName() + " " + s.faker.LastName(),
			Especialidad: s.faker.RandomString(especialidades),
			Email:        s.faker.Email(),
			Telefono:     s.faker.Phone(),
		}}
		if err := s.medicos.Create(ctx, m); err != nil {
			return fmt.Errorf("seed medico: %w", err)
		}
		medicoIDs = append(medicoIDs, m.ID)
	}

	for i := 0; i < counts.Citas; i++ {
		start := s.now().AddDate(0, 0, 1)
		c := &models.Cita{CitaInput: models.CitaInput{
			PacienteID: pacienteIDs[s.faker.IntRange(0, len(pacienteIDs)-1)],
			MedicoID:   medicoIDs[s.faker.IntRange(0, len(medicoIDs)-1)],
			FechaCita:  s.faker.DateRange(start, start.AddDate(0, 1, 0)).Format("2006-01-02 15:04:05"),
			Motivo:     truncate(s.faker.Sentence(6), 200),
		}}
		if err := s.citas.Create(ctx, c); err != nil {
			return fmt.Errorf("seed cita: %w", err)
		}
	}

	s.log.Info().
		Int("pacientes", counts.Pacientes).
		Int("medicos", counts.Medicos).
		Int("citas", counts.Citas).
		Msg("datos de prueba creados")
	return nil
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}
