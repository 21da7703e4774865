package service

import (
	"context"
	"errors"
	"testing"

	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/model"
	"github.com/utkarsh-sanjivan/ashravi-server-sub001/internal/util"
)

func TestChildCreateAndList(t *testing.T) {
	svc := NewChildService(newFakeChildren())
	ctx := context.Background()

	child, err := svc.Create(ctx, parentActor, CreateChildRequest{Name: "Ravi", DateOfBirth: "2018-02-14", Grade: "2"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if child.ParentID != parentActor.UserID || child.DateOfBirth == nil || child.DateOfBirth.Year() != 2018 {
		t.Errorf("child = %+v", child)
	}

	for _, req := range []CreateChildRequest{{Name: "   "}, {Name: "X", DateOfBirth: "14/02/2018"}} {
		if _, err := svc.Create(ctx, parentActor, req); !errors.Is(err, util.ErrInvalidInput) {
			t.Errorf("Create(%+v) err = %v", req, err)
		}
	}

	if _, err := svc.Create(ctx, otherParent, CreateChildRequest{Name: "Other"}); err != nil {
		t.Fatal(err)
	}
	mine, total, err := svc.List(ctx, parentActor, 1, 20)
	if err != nil || total != 1 || mine[0].Name != "Ravi" {
		t.Errorf("List = %+v (%d), %v", mine, total, err)
	}
}

func TestChildAuthorize(t *testing.T) {
	svc := NewChildService(newFakeChildren(testChild()))
	ctx := context.Background()

	clinician := Actor{UserID: 50, Role: model.RoleClinician}
	tests := []struct {
		name    string
		actor   Actor
		childID string
		want    error
	}{
		{"owner", parentActor, "child-1", nil},
		{"admin", adminActor, "child-1", nil},
		{"clinician", clinician, "child-1", nil},
		{"other parent", otherParent, "child-1", util.ErrPermissionDenied},
		{"missing child", parentActor, "child-x", util.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authorize(ctx, tt.actor, tt.childID)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}
