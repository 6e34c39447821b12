package core

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/huangsam/tensorprep/schema"
)

// PartitionSubjects draws round(trainFraction * N) subjects without
// replacement for the training split and assigns the remainder to test.
//
// The draw is seeded and runs over the sorted, deduplicated subject list, so
// the same seed and subject set always produce the same partition. The two
// sets are disjoint and their union is the input set. Observations inherit
// their split from their subject, never individually, so a subject's data
// must never appear on both sides.
func PartitionSubjects(subjectIDs []int, trainFraction float64, seed int64) (*schema.SplitAssignment, error) {
	if trainFraction <= 0 || trainFraction >= 1 {
		return nil, fmt.Errorf("train fraction must be in (0, 1), got %g", trainFraction)
	}

	seen := make(map[int]struct{}, len(subjectIDs))
	subjects := make([]int, 0, len(subjectIDs))
	for _, id := range subjectIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		subjects = append(subjects, id)
	}
	if len(subjects) == 0 {
		return nil, fmt.Errorf("no subjects to partition")
	}
	sort.Ints(subjects)

	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(len(subjects))
	k := int(math.Round(trainFraction * float64(len(subjects))))

	train := make([]int, 0, k)
	test := make([]int, 0, len(subjects)-k)
	for i, p := range perm {
		if i < k {
			train = append(train, subjects[p])
		} else {
			test = append(test, subjects[p])
		}
	}
	sort.Ints(train)
	sort.Ints(test)

	return &schema.SplitAssignment{TrainSubjects: train, TestSubjects: test}, nil
}

// SplitObservations groups observations by their subject's split,
// preserving the source ordering within each group.
func SplitObservations(observations []schema.Observation, split *schema.SplitAssignment) (train, test []schema.Observation) {
	for _, o := range observations {
		if split.IsTrain(o.SubjectID) {
			train = append(train, o)
		} else {
			test = append(test, o)
		}
	}
	return train, test
}
