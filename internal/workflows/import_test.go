package workflows

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/PolarWolf314/dreamlog/internal/dreams"
	kerrors "github.com/PolarWolf314/dreamlog/internal/errors"
)

func encryptedExport(t *testing.T, d dreams.Dream, password string) []byte {
	t.Helper()
	data, _, err := ExportEncrypted(context.Background(), d, password)
	if err != nil {
		t.Fatalf("ExportEncrypted failed: %v", err)
	}
	return data
}

func TestImport_PlainSingle(t *testing.T) {
	s := setupStore(t)
	seed(t, s, sampleDream("a", "one"))

	result, err := Import(context.Background(), s, ImportOptions{
		Data: []byte(`{"id":"b","dreamText":"Swimming","isNightmare":true}`),
	})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if result.Status != ImportCompleted || result.Encrypted {
		t.Errorf("Unexpected result %+v", result)
	}
	if result.Added != 1 || result.Replaced != 0 || result.Total != 2 {
		t.Errorf("Expected 1 added into 2 total, got %+v", result)
	}

	list := load(t, s)
	if len(list) != 2 || list[1].ID != "b" || !list[1].IsNightmare {
		t.Errorf("Expected b appended, got %+v", list)
	}
}

func TestImport_PlainListMerges(t *testing.T) {
	s := setupStore(t)
	seed(t, s, sampleDream("a", "old"), sampleDream("b", "two"))

	result, err := Import(context.Background(), s, ImportOptions{
		Data: []byte(`[{"id":"a","dreamText":"new"},{"id":"c","dreamText":"three"},"junk",42]`),
	})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if len(result.Records) != 2 || result.Added != 1 || result.Replaced != 1 {
		t.Errorf("Expected 2 records, 1 added, 1 replaced, got %+v", result)
	}

	list := load(t, s)
	if len(list) != 3 {
		t.Fatalf("Expected 3 dreams, got %d", len(list))
	}
	if list[0].ID != "a" || list[0].DreamText != "new" {
		t.Errorf("Expected a replaced in place, got %+v", list[0])
	}
	if list[2].ID != "c" {
		t.Errorf("Expected c appended, got %s", list[2].ID)
	}
}

func TestImport_OutOfRangeDateKeepsBatch(t *testing.T) {
	s := setupStore(t)

	result, err := Import(context.Background(), s, ImportOptions{
		Data: []byte(`[{"id":"good","dreamText":"fine"},{"id":"bad","sleepDate":1e17,"todayDate":-1e15}]`),
	})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Added != 2 {
		t.Errorf("Expected both records added, got %+v", result)
	}

	list := load(t, s)
	if len(list) != 2 {
		t.Fatalf("Expected 2 dreams, got %d", len(list))
	}
	if y := list[1].SleepDate.Year(); y < 0 || y > 9999 {
		t.Errorf("Expected sleep date to fall back, got %s", list[1].SleepDate)
	}
}

func TestImport_EncryptedCorrectPassword(t *testing.T) {
	s := setupStore(t)
	d := sampleDream("dream_1", "Flying")

	result, err := Import(context.Background(), s, ImportOptions{
		Data:     encryptedExport(t, d, "secret"),
		Source:   "dream_1.enc.json",
		Prompter: StaticPassword("secret"),
	})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if !result.Encrypted || result.Status != ImportCompleted || result.Added != 1 {
		t.Errorf("Unexpected result %+v", result)
	}
}

func TestImport_PromptLabelNamesSource(t *testing.T) {
	s := setupStore(t)

	var label string
	prompter := PromptFunc(func(ctx context.Context, l string) (string, bool, error) {
		label = l
		return "secret", true, nil
	})

	_, err := Import(context.Background(), s, ImportOptions{
		Data:     encryptedExport(t, sampleDream("x", "y"), "secret"),
		Source:   "x.enc.json",
		Prompter: prompter,
	})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if label != "Password for x.enc.json" {
		t.Errorf("Unexpected prompt label %q", label)
	}
}

func TestImport_FailuresLeaveStoreUntouched(t *testing.T) {
	packet := encryptedExport(t, sampleDream("dream_1", "Flying"), "secret")

	tests := []struct {
		name     string
		data     []byte
		prompter PasswordPrompter
		wantErr  error
	}{
		{"WrongPassword", packet, StaticPassword("wrong"), kerrors.ErrAuthFailed},
		{"UnknownEnvelope", []byte(`{"_enc":"AESGCMv2","s":"00","iv":"00","ct":"00"}`), StaticPassword("secret"), kerrors.ErrUnknownFormat},
		{"Malformed", []byte(`{"id":`), nil, kerrors.ErrMalformedImport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := setupStore(t)
			seed(t, s, sampleDream("a", "keep me"))

			_, err := Import(context.Background(), s, ImportOptions{Data: tt.data, Prompter: tt.prompter})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Expected %v, got %v", tt.wantErr, err)
			}

			list := load(t, s)
			if len(list) != 1 || list[0].DreamText != "keep me" {
				t.Errorf("Expected store untouched, got %+v", list)
			}
		})
	}
}

func TestImport_UnknownEnvelopeNeverPrompts(t *testing.T) {
	s := setupStore(t)

	prompted := false
	prompter := PromptFunc(func(context.Context, string) (string, bool, error) {
		prompted = true
		return "secret", true, nil
	})

	_, err := Import(context.Background(), s, ImportOptions{
		Data:     []byte(`{"_enc":"ROT13","payload":"x"}`),
		Prompter: prompter,
	})
	if !errors.Is(err, kerrors.ErrUnknownFormat) {
		t.Errorf("Expected ErrUnknownFormat, got %v", err)
	}
	if prompted {
		t.Errorf("Expected no password prompt for unknown envelope")
	}
}

func TestImport_PlainNeverPrompts(t *testing.T) {
	s := setupStore(t)

	prompter := PromptFunc(func(context.Context, string) (string, bool, error) {
		t.Fatal("Unexpected password prompt for plaintext")
		return "", false, nil
	})

	if _, err := Import(context.Background(), s, ImportOptions{Data: []byte(`{"id":"a"}`), Prompter: prompter}); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
}

func TestImport_Declined(t *testing.T) {
	s := setupStore(t)
	seed(t, s, sampleDream("a", "keep me"))

	result, err := Import(context.Background(), s, ImportOptions{
		Data:     encryptedExport(t, sampleDream("b", "new"), "secret"),
		Prompter: StaticPassword(""),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if result.Status != ImportCancelled {
		t.Errorf("Expected ImportCancelled, got %s", result.Status)
	}
	if len(load(t, s)) != 1 {
		t.Errorf("Expected store untouched")
	}
}

func TestImport_NoValidRecords(t *testing.T) {
	for _, data := range []string{`[]`, `[1,"two",null]`, `"just a string"`, `42`} {
		t.Run(data, func(t *testing.T) {
			s := setupStore(t)
			seed(t, s, sampleDream("a", "keep me"))

			result, err := Import(context.Background(), s, ImportOptions{Data: []byte(data)})
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if result.Status != ImportNoValidRecords {
				t.Errorf("Expected ImportNoValidRecords, got %s", result.Status)
			}
			if len(load(t, s)) != 1 {
				t.Errorf("Expected store untouched")
			}
		})
	}
}

func TestImport_DryRun(t *testing.T) {
	s := setupStore(t)
	seed(t, s, sampleDream("a", "old"))

	result, err := Import(context.Background(), s, ImportOptions{
		Data:   []byte(`[{"id":"a","dreamText":"new"},{"id":"b"}]`),
		DryRun: true,
	})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	if !result.DryRun || result.Added != 1 || result.Replaced != 1 || result.Total != 2 {
		t.Errorf("Unexpected dry-run result %+v", result)
	}

	list := load(t, s)
	if len(list) != 1 || list[0].DreamText != "old" {
		t.Errorf("Dry run changed the store: %+v", list)
	}
}

func TestImport_Idempotent(t *testing.T) {
	s := setupStore(t)
	data := []byte(`[{"id":"a","dreamText":"one"},{"id":"b","dreamText":"two"}]`)

	if _, err := Import(context.Background(), s, ImportOptions{Data: data}); err != nil {
		t.Fatalf("First import failed: %v", err)
	}
	result, err := Import(context.Background(), s, ImportOptions{Data: data})
	if err != nil {
		t.Fatalf("Second import failed: %v", err)
	}

	if result.Added != 0 || result.Replaced != 2 || result.Total != 2 {
		t.Errorf("Expected re-import to replace only, got %+v", result)
	}
}

func TestExportImport_EndToEnd(t *testing.T) {
	ctx := context.Background()
	s := setupStore(t)

	draft := dreams.Dream{DreamText: "Flying"}
	draft.SelectType(dreams.TypeLucid)

	created, err := CreateDream(ctx, s, draft)
	if err != nil {
		t.Fatalf("CreateDream failed: %v", err)
	}
	if list := load(t, s); len(list) != 1 {
		t.Fatalf("Expected 1 dream after create, got %d", len(list))
	}

	deliverer := &memoryDeliverer{}
	if _, err := Export(ctx, s, ExportOptions{
		DreamID:   created.ID,
		Encrypt:   true,
		Prompter:  StaticPassword("secret"),
		Deliverer: deliverer,
	}); err != nil {
		t.Fatalf("Export failed: %v", err)
	}

	result, err := Import(ctx, s, ImportOptions{
		Data:     deliverer.data,
		Source:   deliverer.filename,
		Prompter: StaticPassword("secret"),
	})
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Replaced != 1 || result.Added != 0 {
		t.Errorf("Expected the record to replace itself, got %+v", result)
	}

	list := load(t, s)
	if len(list) != 1 {
		t.Fatalf("Expected exactly 1 dream, got %d", len(list))
	}

	want, _ := json.Marshal(created)
	got, _ := json.Marshal(list[0])
	if string(got) != string(want) {
		t.Errorf("Round trip changed the record:\nwant %s\ngot  %s", want, got)
	}
}

func TestImportStatus_String(t *testing.T) {
	if ImportCompleted.String() != "completed" || ImportCancelled.String() != "cancelled" || ImportNoValidRecords.String() != "no-valid-records" {
		t.Errorf("Unexpected status names")
	}
}
