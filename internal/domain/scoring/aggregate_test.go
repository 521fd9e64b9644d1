package scoring

import (
	"reflect"
	"testing"
)

func TestAggregateGlobal(t *testing.T) {
	t.Parallel()

	divisions := []DivisionScore{
		{UserID: "alice", DivisionKey: "2022carv", Sum: 120},
		{UserID: "alice", DivisionKey: "2022gal", Sum: 80},
		{UserID: "bob", DivisionKey: "2022carv", Sum: 150},
		{UserID: "carol", DivisionKey: "2022tur", Sum: 200},
	}
	einstein := []EinsteinScore{
		{UserID: "alice", Sum: 300},
		{UserID: "bob", Sum: 350},
		{UserID: "dave", Sum: 90},
	}

	got := AggregateGlobal(divisions, einstein)
	want := []GlobalScore{
		{UserID: "alice", DivisionTotal: 200, EinsteinTotal: 300, Sum: 500},
		{UserID: "bob", DivisionTotal: 150, EinsteinTotal: 350, Sum: 500},
		{UserID: "carol", DivisionTotal: 200, EinsteinTotal: 0, Sum: 200},
		{UserID: "dave", DivisionTotal: 0, EinsteinTotal: 90, Sum: 90},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("global = %+v, want %+v", got, want)
	}
}

func TestAggregateGlobalEmpty(t *testing.T) {
	t.Parallel()

	if got := AggregateGlobal(nil, nil); len(got) != 0 {
		t.Fatalf("global = %+v, want empty", got)
	}
}
