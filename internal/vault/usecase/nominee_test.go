package usecase

import (
	"errors"
	"strconv"
	"testing"

	"github.com/virasatlabs/virasat/internal/pkg/crypting"
	"github.com/virasatlabs/virasat/internal/pkg/goerror"
	"github.com/virasatlabs/virasat/internal/vault/entity"
)

func validNomineeInput() NomineeCreateInput {
	return NomineeCreateInput{
		Name:         "Asha Sharma",
		Relation:     "spouse",
		Mobile:       "9123456780",
		Email:        "asha@example.com",
		Aadhaar:      "123412341234",
		SharePercent: 40,
	}
}

func TestNomineeCreatePublishesInvite(t *testing.T) {
	repo := &fakeRepo{}
	mq := &fakeMessaging{}
	uc := newTestUsecase(t, repo, mq)

	out, err := uc.NomineeCreate(ownerContext(), validNomineeInput())
	if err != nil {
		t.Fatalf("NomineeCreate() error = %v", err)
	}
	if out.ID == 0 {
		t.Error("NomineeCreate() returned zero ID")
	}

	if len(repo.createdNominees) != 1 {
		t.Fatalf("created %d nominees, want 1", len(repo.createdNominees))
	}
	saved := repo.createdNominees[0]
	if saved.OwnerMobile != testOwner {
		t.Errorf("OwnerMobile = %q, want %q", saved.OwnerMobile, testOwner)
	}

	if len(mq.invited) != 1 {
		t.Fatalf("published %d invite events, want 1", len(mq.invited))
	}
	evt := mq.invited[0]
	if evt.OwnerMobile != testOwner || evt.NomineeID != saved.ID || evt.NomineeName != "Asha Sharma" {
		t.Errorf("invite event = %+v", evt)
	}
	if evt.NomineeMobile != "9123456780" || evt.NomineeEmail != "asha@example.com" || evt.Relation != "spouse" {
		t.Errorf("invite event contact fields = %+v", evt)
	}
}

func TestNomineeCreateEncryptsAadhaar(t *testing.T) {
	repo := &fakeRepo{}
	uc := newTestUsecase(t, repo, &fakeMessaging{})

	if _, err := uc.NomineeCreate(ownerContext(), validNomineeInput()); err != nil {
		t.Fatalf("NomineeCreate() error = %v", err)
	}

	saved := repo.createdNominees[0]
	if saved.AadhaarCiphertext == "" || saved.AadhaarCiphertext == "123412341234" {
		t.Fatalf("AadhaarCiphertext = %q, want encrypted value", saved.AadhaarCiphertext)
	}

	ownerID, _ := strconv.ParseInt(testOwner, 10, 64)
	plain, err := testEncryptor().DecryptString(saved.AadhaarCiphertext, crypting.Scope{
		OwnerID: ownerID,
		Purpose: crypting.PurposeNomineeAadhaar,
	})
	if err != nil {
		t.Fatalf("DecryptString() error = %v", err)
	}
	if plain != "123412341234" {
		t.Errorf("decrypted aadhaar = %q, want original", plain)
	}
}

func TestNomineeCreateShareCap(t *testing.T) {
	repo := &fakeRepo{sumShare: 70}
	mq := &fakeMessaging{}
	uc := newTestUsecase(t, repo, mq)

	_, err := uc.NomineeCreate(ownerContext(), validNomineeInput())
	if err == nil {
		t.Fatal("NomineeCreate() over the share cap should fail")
	}
	assertCode(t, err, goerror.CodeInvalidInput)

	if len(repo.createdNominees) != 0 {
		t.Error("nominee was saved despite exceeding the share cap")
	}
	if len(mq.invited) != 0 {
		t.Error("invite event was published despite exceeding the share cap")
	}

	// 70 already allocated plus 30 exactly fills the vault.
	in := validNomineeInput()
	in.SharePercent = 30
	if _, err := uc.NomineeCreate(ownerContext(), in); err != nil {
		t.Fatalf("NomineeCreate() at exactly 100 percent error = %v", err)
	}
}

func TestNomineeCreatePublishFailureIsNonFatal(t *testing.T) {
	repo := &fakeRepo{}
	mq := &fakeMessaging{err: errors.New("broker unavailable")}
	uc := newTestUsecase(t, repo, mq)

	if _, err := uc.NomineeCreate(ownerContext(), validNomineeInput()); err != nil {
		t.Fatalf("NomineeCreate() error = %v, want nil when only the publish fails", err)
	}
	if len(repo.createdNominees) != 1 {
		t.Errorf("created %d nominees, want 1", len(repo.createdNominees))
	}
}

func TestNomineeCreateRejectsBadInput(t *testing.T) {
	uc := newTestUsecase(t, &fakeRepo{}, &fakeMessaging{})

	tests := []struct {
		name   string
		mutate func(*NomineeCreateInput)
	}{
		{"missing name", func(in *NomineeCreateInput) { in.Name = "" }},
		{"bad mobile", func(in *NomineeCreateInput) { in.Mobile = "12345" }},
		{"short aadhaar", func(in *NomineeCreateInput) { in.Aadhaar = "1234" }},
		{"share over 100", func(in *NomineeCreateInput) { in.SharePercent = 101 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := validNomineeInput()
			tc.mutate(&in)

			_, err := uc.NomineeCreate(ownerContext(), in)
			if err == nil {
				t.Fatal("NomineeCreate() should reject invalid input")
			}
			assertCode(t, err, goerror.CodeInvalidInput)
		})
	}
}

func TestNomineeListMasksAadhaar(t *testing.T) {
	ownerID, _ := strconv.ParseInt(testOwner, 10, 64)
	ciphertext, err := testEncryptor().EncryptString("123412341234", crypting.Scope{
		OwnerID: ownerID,
		Purpose: crypting.PurposeNomineeAadhaar,
	})
	if err != nil {
		t.Fatalf("EncryptString() error = %v", err)
	}

	repo := &fakeRepo{nominees: []entity.Nominee{
		{ID: 1, OwnerMobile: testOwner, Name: "Asha", AadhaarCiphertext: ciphertext},
		{ID: 2, OwnerMobile: testOwner, Name: "Ravi"},
	}}
	uc := newTestUsecase(t, repo, &fakeMessaging{})

	out, err := uc.NomineeList(ownerContext())
	if err != nil {
		t.Fatalf("NomineeList() error = %v", err)
	}
	if len(out.Nominees) != 2 {
		t.Fatalf("listed %d nominees, want 2", len(out.Nominees))
	}

	if got := out.Nominees[0].AadhaarMasked; got != "XXXX-XXXX-1234" {
		t.Errorf("AadhaarMasked = %q, want XXXX-XXXX-1234", got)
	}
	if got := out.Nominees[1].AadhaarMasked; got != "" {
		t.Errorf("AadhaarMasked for nominee without aadhaar = %q, want empty", got)
	}
}
