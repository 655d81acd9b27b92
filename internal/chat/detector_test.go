package chat

import "testing"

func TestShouldReload(t *testing.T) {
	positives := []string{
		"Your appointment has been booked for Monday at 10:00!",
		"Done - I booked you in.",
		"BOOKED!",
		"Your appointment has been canceled as requested.",
		"I've canceled the visit and you're all set.",
		"Booked and canceled in one sentence, somehow.",
	}
	for _, reply := range positives {
		if !ShouldReload(reply) {
			t.Errorf("expected true for %q", reply)
		}
	}

	negatives := []string{
		"What date works best for you?",
		"We offer Medical Consultation and Medical Clearance.",
		"",
		"Could you confirm the time?",
		"Your booking is almost ready, one more question.",
	}
	for _, reply := range negatives {
		if ShouldReload(reply) {
			t.Errorf("expected false for %q", reply)
		}
	}
}

func TestShouldReload_BookingIsNotBooked(t *testing.T) {
	// "booking" does not contain "booked"; only the past tense signals completion
	if ShouldReload("I'm preparing your booking now") {
		t.Error("expected false while the assistant is still working")
	}
}
