package samples

import (
	"fmt"

	"github.com/Pallinder/go-randomdata"
	"github.com/adamluzsi/lazyseq/pkg/lazyseq"
	uuid "github.com/satori/go.uuid"
)

// UniqueNames yields "" followed by prefix_1, prefix_2, ...
// The empty first element makes it easy to tell a fresh cursor apart from a used one.
func UniqueNames(prefix string) *lazyseq.Sequence[string] {
	return lazyseq.Must(lazyseq.New("", UniqueNameStep(prefix)))
}

func UniqueNameStep(prefix string) lazyseq.Generator[string] {
	return func(_ string, index uint64) (string, bool) {
		return fmt.Sprintf("%s_%d", prefix, index), false
	}
}

type Person struct {
	ID       uuid.UUID
	Name     string
	Nickname string
}

// People is an infinite supply of test fixtures with unique names.
// Every traversal starts with the same first Person,
// the following ones are created on demand with a fresh ID.
func People() *lazyseq.Sequence[Person] {
	return lazyseq.Must(lazyseq.New(NewPerson(0), PersonStep))
}

func PersonStep(_ Person, index uint64) (Person, bool) {
	return NewPerson(index), false
}

// NewPerson creates the Person found at index of the People sequence.
func NewPerson(index uint64) Person {
	return Person{
		ID:       uuid.NewV4(),
		Name:     fmt.Sprintf("name_%d", index),
		Nickname: randomdata.SillyName(),
	}
}
