package sitedata

import "strings"

var nameToIDReplacer = strings.NewReplacer(" ", "-", ":", "_")

// NameToID turns a display name, like a track name, into something safe to
// use in a file name or URL: "Session 1: NLP Applications" becomes
// "session-1_-nlp-applications".
func NameToID(name string) string {
	return strings.ToLower(nameToIDReplacer.Replace(name))
}

// PaperChatChannel returns the Rocket.Chat channel for the paper with the
// passed id. Channel names can't contain dots, so "2023.acl-long.1" becomes
// "paper-2023-acl-long-1".
func PaperChatChannel(id string) string {
	return "paper-" + strings.ReplaceAll(id, ".", "-")
}
