package handlers

import "testing"

func TestParcelPatchSkipsEmptyFields(t *testing.T) {
	price := 500.0
	patch := parcelPatch(updateParcelRequest{
		ReceiverName: "  Jane Doe ",
		Price:        &price,
	})

	if len(patch) != 2 {
		t.Fatalf("expected 2 patched fields, got %d: %v", len(patch), patch)
	}
	if patch["receiverName"] != "Jane Doe" {
		t.Fatalf("expected trimmed receiverName, got %v", patch["receiverName"])
	}
	if patch["price"] != 500.0 {
		t.Fatalf("expected price 500, got %v", patch["price"])
	}
}

func TestParcelPatchEmptyRequest(t *testing.T) {
	if patch := parcelPatch(updateParcelRequest{}); len(patch) != 0 {
		t.Fatalf("expected empty patch, got %v", patch)
	}
}

func TestParcelPatchNeverTouchesWorkflowFields(t *testing.T) {
	weight := 2.5
	patch := parcelPatch(updateParcelRequest{
		SenderName:   "A",
		ParcelWeight: &weight,
	})

	for _, forbidden := range []string{"bookingStatus", "isPaid", "deliveryManId", "senderEmail"} {
		if _, ok := patch[forbidden]; ok {
			t.Fatalf("patch must not contain %q", forbidden)
		}
	}
}
