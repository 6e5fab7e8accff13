package pipeline

import (
	"time"

	"github.com/emprendo/copiloto/internal/model"
)

// Seed loads a small demo dataset into the store. It replaces the
// hardcoded arrays the original dashboard shipped with; call Reset
// first for a clean slate.
func (s *Store) Seed() error {
	demo := []struct {
		in    ClientInput
		notes []NoteInput
		tasks []TaskInput
		comms []CommInput
	}{
		{
			in: ClientInput{
				Name: "Ana Martín", Company: "RetailPlus", Email: "ana@retailplus.com",
				Phone: "+34 612 345 678", Value: 5000, Potential: model.PotentialMedium,
				Source: "referral", Status: model.StageLead,
			},
			tasks: []TaskInput{{
				Title: "Llamar para presentar el plan", Type: model.TaskCall,
				Priority: model.PriorityHigh, DueDate: time.Now().Add(48 * time.Hour),
			}},
		},
		{
			in: ClientInput{
				Name: "Carlos Ruiz", Company: "Panadería Ruiz", Email: "carlos@panaderiaruiz.es",
				Phone: "+34 655 111 222", Value: 1800, Potential: model.PotentialHigh,
				Source: "web", Status: model.StageQualified,
			},
			notes: []NoteInput{{
				Content: "Interesado en el módulo de inventario", Type: model.NoteMeeting,
				Priority: model.PriorityHigh, Author: "laura",
			}},
		},
		{
			in: ClientInput{
				Name: "Lucía Fernández", Company: "Floristería Lucía", Email: "lucia@floristeria.com",
				Value: 3200, Potential: model.PotentialMedium,
				Source: "instagram", Status: model.StageProposal,
			},
			comms: []CommInput{{
				Type: model.CommEmail, Direction: model.DirectionOutbound,
				Subject: "Propuesta comercial", Content: "Enviada propuesta con descuento anual",
				Status: model.CommCompleted, Outcome: model.OutcomeFollowUpNeed, Author: "laura",
			}},
		},
		{
			in: ClientInput{
				Name: "Miguel Torres", Company: "Gimnasio Torres", Email: "miguel@gimtorres.es",
				Phone: "+34 699 888 777", Value: 7500, Potential: model.PotentialHigh,
				Source: "referral", Status: model.StageNegotiation,
			},
		},
		{
			in: ClientInput{
				Name: "Sofía Gómez", Company: "Clínica Dental Gómez", Email: "sofia@clinicagomez.com",
				Value: 12000, Potential: model.PotentialHigh,
				Source: "web", Status: model.StageClosedWon,
			},
		},
		{
			in: ClientInput{
				Name: "Javier López", Company: "Taller López", Email: "javier@tallerlopez.es",
				Value: 900, Potential: model.PotentialLow,
				Source: "cold-call", Status: model.StageClosedLost,
			},
		},
	}

	for _, d := range demo {
		c, err := s.CreateClient(d.in)
		if err != nil {
			return err
		}
		for _, n := range d.notes {
			if _, err := s.AddNote(c.ID, n); err != nil {
				return err
			}
		}
		for _, t := range d.tasks {
			if _, err := s.AddTask(c.ID, t); err != nil {
				return err
			}
		}
		for _, cm := range d.comms {
			if _, err := s.AddCommunication(c.ID, cm); err != nil {
				return err
			}
		}
	}
	return nil
}
