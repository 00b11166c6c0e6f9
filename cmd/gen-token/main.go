package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/campushub/campushub-api/internal/config"
	"github.com/campushub/campushub-api/internal/pkg/identity"
)

// Development helper: mints a signed bearer token for exercising the
// admin API by hand. The gate still requires a matching admin record,
// claims alone do not grant access.
func main() {
	var (
		uidFlag   = flag.String("uid", "", "subject uid (random if empty)")
		emailFlag = flag.String("email", "dev@campushub.local", "subject email")
		nameFlag  = flag.String("name", "Dev Admin", "subject display name")
		adminFlag = flag.Bool("admin", true, "set admin claim hint")
		superFlag = flag.Bool("superadmin", false, "set superadmin claim hint")
	)
	flag.Parse()

	cfg := config.Load()

	uid := uuid.New()
	if *uidFlag != "" {
		parsed, err := uuid.Parse(*uidFlag)
		if err != nil {
			log.Fatalf("invalid uid: %v", err)
		}
		uid = parsed
	}

	verifier := identity.NewVerifier(cfg.JWTSecret, cfg.JWTAccessTTL)
	token, err := verifier.GenerateToken(identity.Identity{
		UID:        uid,
		Email:      *emailFlag,
		Name:       *nameFlag,
		Admin:      *adminFlag || *superFlag,
		Superadmin: *superFlag,
	})
	if err != nil {
		log.Fatalf("failed to sign token: %v", err)
	}

	fmt.Printf("uid:   %s\n", uid)
	fmt.Printf("token: %s\n", token)
}
