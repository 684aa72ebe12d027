// Package codestory turns generated markdown tutorials into structured,
// translatable and speakable documents.
//
// # Pure Operations
//
// The core transforms never fail and perform no I/O:
//
//	doc := codestory.Parse("# Title\n\nSome *text* with `code`.\n")
//	tree := codestory.ToRenderTree(doc)
//	chunks := codestory.ToChunks(raw)       // concatenation reproduces raw
//	spoken := codestory.ToSpeechText(raw)   // markup removed, fences elided
//
// Parse recognizes headers, triple-backtick fences, lists and paragraphs.
// Inline markers inside a paragraph are tokenized by Format into plain,
// code, bold, italic and link spans. Malformed markers stay literal text.
//
// # Reading a Task
//
// A Reader loads the files of one generation task from a TaskSource,
// translates them fence-safely and renders each one:
//
//	cache := codestory.NewTranslationCache()
//	defer cache.Close()
//	reader := codestory.NewReader(source,
//	    codestory.WithTranslation(translator, codestory.WithTranslationCache(cache)),
//	)
//	tut, err := reader.Open(ctx, taskID, "hi")
//	if err != nil {
//	    return err
//	}
//	for _, n := range tut.Notices {
//	    fmt.Println(n) // translation unavailable in Hindi
//	}
//
// Only text chunks are sent to the translator, one request per chunk, all
// in flight together. A failed chunk keeps its source text. A file whose
// every chunk failed is shown in its original language and reported as a
// Notice wrapping ErrTranslationUnavailable.
//
// # Capabilities
//
// External collaborators are reached through small interfaces:
// TaskSource, Translator, Clipboard and SpeechEngine. Implementations for
// HTTP backends (NewHTTPSource) and task directories (DirSource) are
// exported; LibreTranslate, OpenAI, system clipboards and espeak live in the
// internal packages and are wired by cmd/codestory.
//
// The render tree is exported node by node (HeadingNode, CodeNode,
// CalloutNode, ListNode, ParagraphNode) so callers can draw it themselves.
package codestory
