// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package school

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/someonegg/stablematch"
)

const studentCapacity = 1

func (m *Matcher) side() (Side, error) {
	if m.Proposing == "" {
		return Students, nil
	}
	return ParseSide(string(m.Proposing))
}

func (m *Matcher) Match(data *Data) (*Allocation, error) {
	if data == nil {
		return nil, errors.New("no data")
	}

	side, err := m.side()
	if err != nil {
		return nil, err
	}

	logger := m.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	students, err := genStudents(data.Students)
	if err != nil {
		return nil, err
	}
	schools, err := genSchools(data.Schools)
	if err != nil {
		return nil, err
	}

	proposers, receivers := students, schools
	if side == Schools {
		proposers, receivers = schools, students
	}

	engine, err := stablematch.New(proposers, receivers,
		stablematch.WithLogger(logger.With(zap.String("proposing", string(side)))),
		stablematch.WithWorkers(m.Workers))
	if err != nil {
		return nil, err
	}

	rounds, err := engine.Run()
	if err != nil {
		return nil, err
	}
	logger.Info("allocation completed",
		zap.String("proposing", string(side)), zap.Int("rounds", rounds))

	return genAllocation(side, engine, students, schools), nil
}

func genStudents(students []*Student) ([]stablematch.Record, error) {
	records := make([]stablematch.Record, 0, len(students))
	for i, student := range students {
		if student == nil {
			return nil, fmt.Errorf("%w: null student record at index %d", stablematch.ErrConfig, i)
		}
		records = append(records, stablematch.Record{
			ID:          student.Name,
			Preferences: student.Preferences,
			Capacity:    studentCapacity,
		})
	}
	return records, nil
}

func genSchools(schools []*School) ([]stablematch.Record, error) {
	records := make([]stablematch.Record, 0, len(schools))
	for i, school := range schools {
		if school == nil {
			return nil, fmt.Errorf("%w: null school record at index %d", stablematch.ErrConfig, i)
		}
		records = append(records, stablematch.Record{
			ID:          school.Name,
			Preferences: school.Preferences,
			Capacity:    school.Capacity,
		})
	}
	return records, nil
}

func genAllocation(side Side, engine *stablematch.Engine, students, schools []stablematch.Record) *Allocation {
	alloc := &Allocation{
		Proposing: side,
		Rounds:    engine.Rounds(),
		Schools:   make([]*SchoolAlloc, 0, len(schools)),
		Unmatched: []string{},
	}

	for _, school := range schools {
		var held []string
		if side == Students {
			held = engine.Receiver(school.ID).Held()
		} else {
			held = engine.Proposer(school.ID).Held()
		}
		alloc.Schools = append(alloc.Schools, &SchoolAlloc{
			Name:     school.ID,
			Capacity: school.Capacity,
			Students: held,
		})
		alloc.Summary.Seats += school.Capacity
		alloc.Summary.SeatsFilled += len(held)
	}

	if side == Students {
		alloc.Unmatched = append(alloc.Unmatched, engine.Unmatched()...)
	} else {
		for _, student := range students {
			if len(engine.Receiver(student.ID).Held()) == 0 {
				alloc.Unmatched = append(alloc.Unmatched, student.ID)
			}
		}
	}

	alloc.Summary.StudentsCount = len(students)
	alloc.Summary.SchoolsCount = len(schools)
	alloc.Summary.UnmatchedCount = len(alloc.Unmatched)
	return alloc
}
