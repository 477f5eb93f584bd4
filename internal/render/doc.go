// Package render is the HTML rendering engine the conference pages are built
// on, layered over html/template.
//
// render is organized around Components and Pages. A Component is some piece
// of the HTML document that you want included in the page's output: the
// navbar, the chat iframe, the video embed. A Page is a Component that gets
// rendered itself rather than being included in another Component. The
// schedule is a Page; the navbar it shares with every other page is a
// Component.
//
// Each process has a Site, which acts as a singleton and provides the fs.FS
// containing the templates that Components are using. The Site is available
// at render time as .Site, so it can hold the loaded conference data and
// anything else every page needs.
//
// To render a page, pass it to Execute, or to Render when a server error page
// should be written in its place if rendering fails. The page itself is
// available as .Page within the template.
//
// Components that rely on other Components should return them from
// UseComponents, so the templates, functions, scripts, and stylesheets of the
// whole tree are collected whenever the page is rendered.
package render
