// Package models defines client-side data models used by the MedKeeper CLI:
// the session, the medicine record with its calendar-date type, and the
// signup form.
package models
