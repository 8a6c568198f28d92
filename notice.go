package main

import "fmt"

// DraftFineNotice renders the plain-text notice body sent to a vehicle owner.
// Deterministic template; a generated variant can replace it at this layer
// without touching the pipeline.
func DraftFineNotice(ownerName, plate, violation string, amount int) string {
	return fmt.Sprintf(
		"Dear %s,\n\n"+
			"This is a notice regarding a traffic violation detected for your vehicle.\n\n"+
			"Plate Number: %s\n"+
			"Violation: %s\n"+
			"Fine Amount: INR %d\n\n"+
			"Please pay the fine as per applicable rules.\n\n"+
			"Regards,\n"+
			"ANPR Demo System\n",
		ownerName, plate, violation, amount)
}
