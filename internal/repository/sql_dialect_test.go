package repository

import (
	"strings"
	"testing"
)

func TestDBDialectNameDefaultsToSQLite(t *testing.T) {
	if got := dbDialectName(nil); got != "sqlite" {
		t.Fatalf("dialect name want sqlite got %s", got)
	}
}

func TestLikeOperatorDefaultsToLike(t *testing.T) {
	if got := likeOperator(nil); got != "LIKE" {
		t.Fatalf("like operator want LIKE got %s", got)
	}
}

func TestBuildLikeCondition(t *testing.T) {
	condition, argCount := buildLikeCondition(nil, []string{"name", "author_name", " "})
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	if !strings.Contains(condition, "name LIKE ?") {
		t.Fatalf("condition should contain name LIKE, got %s", condition)
	}
	if !strings.Contains(condition, "author_name LIKE ?") {
		t.Fatalf("condition should contain author_name LIKE, got %s", condition)
	}
	if !strings.Contains(condition, " OR ") {
		t.Fatalf("columns should be joined with OR, got %s", condition)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%test%", 3)
	if len(args) != 3 {
		t.Fatalf("args len want 3 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%test%" {
			t.Fatalf("args[%d] want %%test%% got %v", idx, arg)
		}
	}
}
