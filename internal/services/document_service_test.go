package services

import (
	"testing"

	"farmbook/internal/models"
	"farmbook/internal/pagination"
	"farmbook/internal/testutil"
)

func TestCreateDocument(t *testing.T) {
	t.Run("creates_active_private_document", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDocumentService(db)
		admin := testutil.CreateTestUserWithRoles(t, db, models.RoleAdmin)

		doc, err := svc.CreateDocument(admin.ID, DocumentInput{
			Title: "  Rice Blast Control  ",
			URL:   "https://docs.example.com/rice-blast",
			Crop:  "Rice",
			Topic: "disease",
		})
		testutil.AssertNoError(t, err)
		if doc.Title != "Rice Blast Control" {
			t.Errorf("expected trimmed title, got %q", doc.Title)
		}
		if !doc.Active {
			t.Error("expected new document to be active")
		}
		if doc.Public {
			t.Error("expected new document to be private")
		}
		if doc.CreatedByID != admin.ID {
			t.Errorf("expected creator %d, got %d", admin.ID, doc.CreatedByID)
		}
	})

	t.Run("honors_explicit_flags", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDocumentService(db)
		admin := testutil.CreateTestUserWithRoles(t, db, models.RoleAdmin)

		inactive := false
		public := true
		doc, err := svc.CreateDocument(admin.ID, DocumentInput{
			Title:  "Draft Guide",
			URL:    "https://docs.example.com/draft",
			Active: &inactive,
			Public: &public,
		})
		testutil.AssertNoError(t, err)
		if doc.Active {
			t.Error("expected document to start inactive")
		}
		if !doc.Public {
			t.Error("expected document to be public")
		}
	})

	t.Run("rejects_blank_title", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDocumentService(db)
		admin := testutil.CreateTestUserWithRoles(t, db, models.RoleAdmin)

		_, err := svc.CreateDocument(admin.ID, DocumentInput{Title: "   ", URL: "https://docs.example.com/x"})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("rejects_blank_url", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDocumentService(db)
		admin := testutil.CreateTestUserWithRoles(t, db, models.RoleAdmin)

		_, err := svc.CreateDocument(admin.ID, DocumentInput{Title: "Guide", URL: "  "})
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestUpdateDocument(t *testing.T) {
	t.Run("rewrites_content_and_tags", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDocumentService(db)
		admin := testutil.CreateTestUserWithRoles(t, db, models.RoleAdmin)
		doc := testutil.CreateTestDocument(t, db, admin.ID)

		updated, err := svc.UpdateDocument(doc.ID, DocumentInput{
			Title: "Irrigation Scheduling",
			URL:   "https://docs.example.com/irrigation",
			Crop:  "Coffee",
			Stage: "flowering",
		})
		testutil.AssertNoError(t, err)
		if updated.Title != "Irrigation Scheduling" || updated.Crop != "Coffee" {
			t.Errorf("expected rewritten fields, got %+v", updated)
		}
		if !updated.Active {
			t.Error("expected nil flag to keep document active")
		}
	})

	t.Run("unknown_document_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDocumentService(db)

		_, err := svc.UpdateDocument(9999, DocumentInput{Title: "Guide", URL: "https://docs.example.com/x"})
		testutil.AssertAppError(t, err, "DOCUMENT_NOT_FOUND")
	})
}

func TestSetDocumentActive(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewDocumentService(db)
	admin := testutil.CreateTestUserWithRoles(t, db, models.RoleAdmin)
	doc := testutil.CreateTestDocument(t, db, admin.ID)

	updated, err := svc.SetDocumentActive(doc.ID, false)
	testutil.AssertNoError(t, err)
	if updated.Active {
		t.Error("expected document to be inactive")
	}

	updated, err = svc.SetDocumentActive(doc.ID, true)
	testutil.AssertNoError(t, err)
	if !updated.Active {
		t.Error("expected document to be active again")
	}
}

func TestDeleteDocument(t *testing.T) {
	t.Run("removes_document", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDocumentService(db)
		admin := testutil.CreateTestUserWithRoles(t, db, models.RoleAdmin)
		doc := testutil.CreateTestDocument(t, db, admin.ID)

		testutil.AssertNoError(t, svc.DeleteDocument(doc.ID))

		_, err := svc.GetDocument(doc.ID)
		testutil.AssertAppError(t, err, "DOCUMENT_NOT_FOUND")
	})

	t.Run("unknown_document_not_found", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDocumentService(db)

		err := svc.DeleteDocument(9999)
		testutil.AssertAppError(t, err, "DOCUMENT_NOT_FOUND")
	})
}

func TestListDocuments(t *testing.T) {
	t.Run("active_listing_hides_inactive", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDocumentService(db)
		admin := testutil.CreateTestUserWithRoles(t, db, models.RoleAdmin)

		visible := testutil.CreateTestDocument(t, db, admin.ID)
		hidden := testutil.CreateTestDocument(t, db, admin.ID)
		_, err := svc.SetDocumentActive(hidden.ID, false)
		testutil.AssertNoError(t, err)

		result, err := svc.ListDocuments(true, DocumentFilter{}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if len(result.Data) != 1 || result.Data[0].ID != visible.ID {
			t.Errorf("expected only the active document, got %d rows", len(result.Data))
		}

		all, err := svc.ListDocuments(false, DocumentFilter{}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if len(all.Data) != 2 {
			t.Errorf("expected 2 documents in the admin listing, got %d", len(all.Data))
		}
	})

	t.Run("filters_by_crop_and_topic", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDocumentService(db)
		admin := testutil.CreateTestUserWithRoles(t, db, models.RoleAdmin)

		rice, err := svc.CreateDocument(admin.ID, DocumentInput{
			Title: "Rice Fertilizer Plan",
			URL:   "https://docs.example.com/rice-npk",
			Crop:  "Rice",
			Topic: "fertilizer",
		})
		testutil.AssertNoError(t, err)
		_, err = svc.CreateDocument(admin.ID, DocumentInput{
			Title: "Coffee Pruning",
			URL:   "https://docs.example.com/coffee-pruning",
			Crop:  "Coffee",
			Topic: "pruning",
		})
		testutil.AssertNoError(t, err)

		crop := "rice"
		result, err := svc.ListDocuments(true, DocumentFilter{Crop: &crop}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if len(result.Data) != 1 || result.Data[0].ID != rice.ID {
			t.Errorf("expected the rice document, got %d rows", len(result.Data))
		}

		topic := "fertilizer"
		result, err = svc.ListDocuments(true, DocumentFilter{Topic: &topic}, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if len(result.Data) != 1 || result.Data[0].ID != rice.ID {
			t.Errorf("expected the fertilizer document, got %d rows", len(result.Data))
		}
	})

	t.Run("newest_first_and_paginated", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewDocumentService(db)
		admin := testutil.CreateTestUserWithRoles(t, db, models.RoleAdmin)

		testutil.CreateTestDocument(t, db, admin.ID)
		second := testutil.CreateTestDocument(t, db, admin.ID)

		result, err := svc.ListDocuments(true, DocumentFilter{}, pagination.PageRequest{Page: 1, PageSize: 1})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 2 || result.TotalPages != 2 {
			t.Errorf("expected 2 items over 2 pages, got %d items %d pages", result.TotalItems, result.TotalPages)
		}
		if len(result.Data) != 1 || result.Data[0].ID != second.ID {
			t.Errorf("expected the newest document first")
		}
	})
}
