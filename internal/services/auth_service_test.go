package services

import (
	"testing"
	"time"

	"farmbook/internal/config"
	"farmbook/internal/models"
	"farmbook/internal/testutil"
)

func testAuthConfig() *config.Config {
	return &config.Config{
		JWTSecret:              "test-secret-key-that-is-long-enough-for-hs512-token-signing!!!!!",
		JWTValidDuration:       time.Hour,
		JWTRefreshableDuration: 10 * time.Hour,
	}
}

func TestAuthenticate(t *testing.T) {
	t.Run("blank_identifier", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, testAuthConfig())

		_, err := svc.Authenticate("   ", "password123")
		testutil.AssertAppError(t, err, "IDENTIFIER_REQUIRED")
	})

	t.Run("unknown_identifier", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, testAuthConfig())

		_, err := svc.Authenticate("nobody@test.com", "password123")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("wrong_password", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, testAuthConfig())
		user := testutil.CreateTestUser(t, db)

		_, err := svc.Authenticate(user.Email, "not-the-password")
		testutil.AssertAppError(t, err, "INVALID_CREDENTIALS")
	})

	t.Run("locked_user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, testAuthConfig())
		user := testutil.CreateTestUser(t, db)
		if err := db.Model(user).Update("status", models.UserStatusLocked).Error; err != nil {
			t.Fatalf("failed to lock user: %v", err)
		}

		_, err := svc.Authenticate(user.Email, "password123")
		testutil.AssertAppError(t, err, "USER_LOCKED")
	})

	t.Run("no_roles", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, testAuthConfig())
		user := testutil.CreateTestUser(t, db)
		if err := db.Model(user).Association("Roles").Clear(); err != nil {
			t.Fatalf("failed to clear roles: %v", err)
		}

		_, err := svc.Authenticate(user.Email, "password123")
		testutil.AssertAppError(t, err, "ROLE_MISSING")
	})

	t.Run("success_by_email", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, testAuthConfig())
		user := testutil.CreateTestUser(t, db)

		session, err := svc.Authenticate(user.Email, "password123")
		testutil.AssertNoError(t, err)

		if session.Token == "" {
			t.Fatal("expected a token")
		}
		if session.TokenType != "Bearer" {
			t.Errorf("expected token type Bearer, got %q", session.TokenType)
		}
		if session.ExpiresIn != 3600 {
			t.Errorf("expected expires_in 3600, got %d", session.ExpiresIn)
		}
		if session.Role != models.RoleFarmer {
			t.Errorf("expected primary role FARMER, got %q", session.Role)
		}
		if session.RedirectTo != "/farmer" {
			t.Errorf("expected redirect /farmer, got %q", session.RedirectTo)
		}
	})

	t.Run("success_by_username", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, testAuthConfig())
		user := testutil.CreateTestUser(t, db)

		session, err := svc.Authenticate(user.Username, "password123")
		testutil.AssertNoError(t, err)
		if session.UserID != user.ID {
			t.Errorf("expected user %d, got %d", user.ID, session.UserID)
		}
	})

	t.Run("admin_role_takes_precedence", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, testAuthConfig())
		user := testutil.CreateTestUserWithRoles(t, db, models.RoleFarmer, models.RoleAdmin)

		session, err := svc.Authenticate(user.Email, "password123")
		testutil.AssertNoError(t, err)
		if session.Role != models.RoleAdmin {
			t.Errorf("expected primary role ADMIN, got %q", session.Role)
		}
		if session.RedirectTo != "/admin" {
			t.Errorf("expected redirect /admin, got %q", session.RedirectTo)
		}
	})
}

func TestVerifyToken(t *testing.T) {
	t.Run("valid_token_passes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, testAuthConfig())
		user := testutil.CreateTestUser(t, db)

		session, err := svc.Authenticate(user.Email, "password123")
		testutil.AssertNoError(t, err)

		claims, err := svc.VerifyToken(session.Token, false)
		testutil.AssertNoError(t, err)
		if claims.UserID != user.ID {
			t.Errorf("expected user %d in claims, got %d", user.ID, claims.UserID)
		}
		if claims.Issuer != "farmbook" {
			t.Errorf("expected issuer farmbook, got %q", claims.Issuer)
		}
		if claims.ID == "" {
			t.Error("expected a jti claim")
		}
		if !claims.HasScope(models.RoleFarmer) {
			t.Errorf("expected scope to carry ROLE_FARMER, got %q", claims.Scope)
		}
	})

	t.Run("garbage_token_fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, testAuthConfig())

		_, err := svc.VerifyToken("not-a-token", false)
		testutil.AssertAppError(t, err, "UNAUTHENTICATED")
	})

	t.Run("wrong_secret_fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, testAuthConfig())
		user := testutil.CreateTestUser(t, db)
		session, err := svc.Authenticate(user.Email, "password123")
		testutil.AssertNoError(t, err)

		other := testAuthConfig()
		other.JWTSecret = "a-completely-different-secret-key-also-long-enough-for-hs512!!!!"
		otherSvc := NewAuthService(db, other)

		_, err = otherSvc.VerifyToken(session.Token, false)
		testutil.AssertAppError(t, err, "UNAUTHENTICATED")
	})

	t.Run("expired_token_still_refreshable", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		// Tokens from this service are born expired but stay inside the
		// refresh window.
		cfg := testAuthConfig()
		cfg.JWTValidDuration = -time.Second
		svc := NewAuthService(db, cfg)
		user := testutil.CreateTestUser(t, db)

		session, err := svc.Authenticate(user.Email, "password123")
		testutil.AssertNoError(t, err)

		_, err = svc.VerifyToken(session.Token, false)
		testutil.AssertAppError(t, err, "UNAUTHENTICATED")

		claims, err := svc.VerifyToken(session.Token, true)
		testutil.AssertNoError(t, err)
		if claims.UserID != user.ID {
			t.Errorf("expected user %d, got %d", user.ID, claims.UserID)
		}
	})

	t.Run("outside_refresh_window_fails", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		cfg := testAuthConfig()
		cfg.JWTRefreshableDuration = -time.Second
		svc := NewAuthService(db, cfg)
		user := testutil.CreateTestUser(t, db)

		session, err := svc.Authenticate(user.Email, "password123")
		testutil.AssertNoError(t, err)

		_, err = svc.VerifyToken(session.Token, true)
		testutil.AssertAppError(t, err, "UNAUTHENTICATED")

		// Normal verification is unaffected by the refresh window.
		_, err = svc.VerifyToken(session.Token, false)
		testutil.AssertNoError(t, err)
	})
}

func TestIntrospect(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuthService(db, testAuthConfig())
	user := testutil.CreateTestUser(t, db)

	session, err := svc.Authenticate(user.Email, "password123")
	testutil.AssertNoError(t, err)

	if !svc.Introspect(session.Token) {
		t.Error("expected live token to introspect as valid")
	}
	if svc.Introspect("garbage") {
		t.Error("expected garbage token to introspect as invalid")
	}

	testutil.AssertNoError(t, svc.Logout(session.Token))
	if svc.Introspect(session.Token) {
		t.Error("expected logged-out token to introspect as invalid")
	}
}

func TestLogout(t *testing.T) {
	t.Run("denylists_token", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, testAuthConfig())
		user := testutil.CreateTestUser(t, db)

		session, err := svc.Authenticate(user.Email, "password123")
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.Logout(session.Token))

		_, err = svc.VerifyToken(session.Token, false)
		testutil.AssertAppError(t, err, "UNAUTHENTICATED")

		var count int64
		if err := db.Model(&models.InvalidatedToken{}).Count(&count).Error; err != nil {
			t.Fatalf("failed to count denylist: %v", err)
		}
		if count != 1 {
			t.Errorf("expected 1 denylist entry, got %d", count)
		}
	})

	t.Run("invalid_token_is_noop", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, testAuthConfig())

		testutil.AssertNoError(t, svc.Logout("garbage"))
	})

	t.Run("repeated_logout_is_noop", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, testAuthConfig())
		user := testutil.CreateTestUser(t, db)

		session, err := svc.Authenticate(user.Email, "password123")
		testutil.AssertNoError(t, err)

		testutil.AssertNoError(t, svc.Logout(session.Token))
		testutil.AssertNoError(t, svc.Logout(session.Token))
	})

	t.Run("purges_expired_denylist_rows", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, testAuthConfig())
		user := testutil.CreateTestUser(t, db)

		stale := models.InvalidatedToken{ID: "stale-jti", ExpiryTime: time.Now().Add(-time.Hour)}
		if err := db.Create(&stale).Error; err != nil {
			t.Fatalf("failed to insert stale denylist row: %v", err)
		}

		session, err := svc.Authenticate(user.Email, "password123")
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, svc.Logout(session.Token))

		var count int64
		if err := db.Model(&models.InvalidatedToken{}).Where("id = ?", "stale-jti").Count(&count).Error; err != nil {
			t.Fatalf("failed to count denylist: %v", err)
		}
		if count != 0 {
			t.Error("expected stale denylist row to be purged")
		}
	})
}

func TestRefresh(t *testing.T) {
	t.Run("issues_new_token_and_burns_old", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, testAuthConfig())
		user := testutil.CreateTestUser(t, db)

		session, err := svc.Authenticate(user.Email, "password123")
		testutil.AssertNoError(t, err)

		fresh, err := svc.Refresh(session.Token)
		testutil.AssertNoError(t, err)
		if fresh.Token == "" || fresh.Token == session.Token {
			t.Fatal("expected a distinct new token")
		}
		if fresh.UserID != user.ID {
			t.Errorf("expected user %d, got %d", user.ID, fresh.UserID)
		}

		// Old token is single-use.
		_, err = svc.VerifyToken(session.Token, false)
		testutil.AssertAppError(t, err, "UNAUTHENTICATED")
		_, err = svc.Refresh(session.Token)
		testutil.AssertAppError(t, err, "UNAUTHENTICATED")

		// New token works.
		_, err = svc.VerifyToken(fresh.Token, false)
		testutil.AssertNoError(t, err)
	})

	t.Run("refreshes_expired_token_inside_window", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)

		cfg := testAuthConfig()
		cfg.JWTValidDuration = -time.Second
		svc := NewAuthService(db, cfg)
		user := testutil.CreateTestUser(t, db)

		session, err := svc.Authenticate(user.Email, "password123")
		testutil.AssertNoError(t, err)

		fresh, err := svc.Refresh(session.Token)
		testutil.AssertNoError(t, err)
		if fresh.Token == "" {
			t.Fatal("expected a new token")
		}
	})

	t.Run("rejects_garbage", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewAuthService(db, testAuthConfig())

		_, err := svc.Refresh("garbage")
		testutil.AssertAppError(t, err, "UNAUTHENTICATED")
	})
}

func TestMe(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewAuthService(db, testAuthConfig())
	user := testutil.CreateTestUser(t, db)

	session, err := svc.Me(user.ID)
	testutil.AssertNoError(t, err)

	if session.Token != "" {
		t.Error("expected no token on a profile lookup")
	}
	if session.Username != user.Username {
		t.Errorf("expected username %q, got %q", user.Username, session.Username)
	}
	if len(session.Roles) != 1 || session.Roles[0] != models.RoleFarmer {
		t.Errorf("expected roles [FARMER], got %v", session.Roles)
	}

	_, err = svc.Me(99999)
	testutil.AssertAppError(t, err, "USER_NOT_FOUND")
}
