// Copyright 2022 someonegg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package school

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/someonegg/stablematch"
)

func makeStudent(name string, prefs ...string) *Student {
	return &Student{Name: name, Preferences: prefs}
}

func makeSchool(name string, capacity int, prefs ...string) *School {
	return &School{Name: name, Preferences: prefs, Capacity: capacity}
}

func sampleData() *Data {
	return &Data{
		Students: []*Student{
			makeStudent("alice", "north", "south"),
			makeStudent("bob", "north", "south"),
			makeStudent("carol", "north"),
			makeStudent("dave", "south"),
		},
		Schools: []*School{
			makeSchool("north", 1, "bob", "alice", "carol"),
			makeSchool("south", 2, "alice", "dave", "bob"),
		},
	}
}

func TestParseSide(t *testing.T) {
	for _, s := range []string{"students", "Student", " 1 "} {
		side, err := ParseSide(s)
		require.NoError(t, err)
		assert.Equal(t, Students, side)
	}
	for _, s := range []string{"schools", "SCHOOL", "2"} {
		side, err := ParseSide(s)
		require.NoError(t, err)
		assert.Equal(t, Schools, side)
	}

	_, err := ParseSide("teachers")
	assert.ErrorIs(t, err, ErrUnknownSide)
	assert.ErrorIs(t, err, stablematch.ErrConfig)
}

func TestMatcher_StudentsPropose(t *testing.T) {
	m := &Matcher{Proposing: Students}
	alloc, err := m.Match(sampleData())
	require.NoError(t, err)

	// Round 1: alice, bob, carol -> north, north keeps bob; dave -> south.
	// Round 2: alice -> south; carol is out of options.
	assert.Equal(t, 2, alloc.Rounds)
	assert.Equal(t, Students, alloc.Proposing)
	require.Len(t, alloc.Schools, 2)
	assert.Equal(t, &SchoolAlloc{Name: "north", Capacity: 1, Students: []string{"bob"}}, alloc.Schools[0])
	assert.Equal(t, &SchoolAlloc{Name: "south", Capacity: 2, Students: []string{"alice", "dave"}}, alloc.Schools[1])
	assert.Equal(t, []string{"carol"}, alloc.Unmatched)
	assert.Equal(t, Summary{
		StudentsCount:  4,
		SchoolsCount:   2,
		Seats:          3,
		SeatsFilled:    3,
		UnmatchedCount: 1,
	}, alloc.Summary)
}

func TestMatcher_SchoolsPropose(t *testing.T) {
	m := &Matcher{Proposing: Schools, Workers: 2}
	alloc, err := m.Match(sampleData())
	require.NoError(t, err)

	assert.Equal(t, 1, alloc.Rounds)
	assert.Equal(t, []string{"bob"}, alloc.Schools[0].Students)
	assert.Equal(t, []string{"alice", "dave"}, alloc.Schools[1].Students)
	assert.Equal(t, []string{"carol"}, alloc.Unmatched)
}

func TestMatcher_DefaultSide(t *testing.T) {
	alloc, err := (&Matcher{}).Match(sampleData())
	require.NoError(t, err)
	assert.Equal(t, Students, alloc.Proposing)
}

func TestMatcher_Errors(t *testing.T) {
	t.Run("UnknownSide", func(t *testing.T) {
		_, err := (&Matcher{Proposing: "teachers"}).Match(sampleData())
		assert.ErrorIs(t, err, ErrUnknownSide)
	})

	t.Run("NoData", func(t *testing.T) {
		_, err := (&Matcher{}).Match(nil)
		assert.Error(t, err)
	})

	t.Run("ZeroCapacitySchool", func(t *testing.T) {
		data := sampleData()
		data.Schools[0].Capacity = 0
		_, err := (&Matcher{}).Match(data)
		assert.ErrorIs(t, err, stablematch.ErrCapacity)
	})

	t.Run("UnknownSchool", func(t *testing.T) {
		data := sampleData()
		data.Students[0].Preferences = append(data.Students[0].Preferences, "east")
		_, err := (&Matcher{}).Match(data)
		assert.ErrorIs(t, err, stablematch.ErrUnknownID)
	})

	t.Run("UnrankedStudent", func(t *testing.T) {
		// north never ranked carol but has to compare her against bob.
		data := sampleData()
		data.Schools[0].Preferences = []string{"bob", "alice"}
		_, err := (&Matcher{}).Match(data)
		assert.ErrorIs(t, err, stablematch.ErrDataIntegrity)
	})
}

func TestMatcher_NullRecords(t *testing.T) {
	t.Run("Student", func(t *testing.T) {
		data := sampleData()
		data.Students = []*Student{data.Students[0], nil, data.Students[2]}

		_, err := (&Matcher{}).Match(data)
		assert.ErrorIs(t, err, stablematch.ErrConfig)
		assert.ErrorContains(t, err, "null student record at index 1")
	})

	t.Run("School", func(t *testing.T) {
		data := sampleData()
		data.Schools = append([]*School{nil}, data.Schools...)

		_, err := (&Matcher{}).Match(data)
		assert.ErrorIs(t, err, stablematch.ErrConfig)
		assert.ErrorContains(t, err, "null school record at index 0")
	})

	t.Run("Decoded", func(t *testing.T) {
		data, err := Decode([]byte(`{
			"students": [{"name": "a", "preferences": ["x"]}, null],
			"schools": [null, {"name": "x", "preferences": ["a"], "capacity": 1}]
		}`), FormatJSON)
		require.NoError(t, err)

		_, err = (&Matcher{}).Match(data)
		assert.ErrorIs(t, err, stablematch.ErrConfig)
		assert.ErrorContains(t, err, "null student record at index 1")
	})
}

func TestMatcher_AllMatched(t *testing.T) {
	data := &Data{
		Students: []*Student{makeStudent("alice", "north")},
		Schools:  []*School{makeSchool("north", 1, "alice")},
	}
	alloc, err := (&Matcher{}).Match(data)
	require.NoError(t, err)
	assert.NotNil(t, alloc.Unmatched)
	assert.Empty(t, alloc.Unmatched)
}
