package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB - ограничение для тестового корпуса
)

// rewriteSeeds are inputs the rewriter accepts.
var rewriteSeeds = []string{
	"X.f!(A, B)",
	"(a + b).f!(c)",
	"let _ = &mut ().f!(&mut ());",
	"let _ = 0 -(0).f!((0));",
	"let _ = (0, &().f!(&()));",
	"if cond { a } else { b }.to_string().f!()",
	"a.g!().f!()",
	"x.f!(y.g!())",
	"if hello.f!() {}",
	"v.unwrap_or!{ return }",
	"val.iter().map(|v| v.1).dbg!();",
	"fn _foo() {} &-0.f!()",
	"match x { _ => 1 }.f!()",
	"postfix_macros! {\n    fn main() { x.dbg!(); }\n}\n",
	"let r = 0..f!();",
	"// comment\nfn main() {\n    let v = x.dbg!(); /* c */\n}\n",
}

// rejectSeeds must fail cleanly.
var rejectSeeds = []string{
	".f!()",
	"(.f!())",
	"if let Some(x) = y { x }.f!()",
	"let y = unsafe { x }.f!();",
	"let y = { 42 }.f!();",
	"postfix_macros! { a }\npostfix_macros! { .f!() }\n",
	"postfix_macros!",
	"\"unterminated",
	"fn f() { (] }",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range rewriteSeeds {
		f.Add([]byte(s))
	}
	for _, s := range rejectSeeds {
		f.Add([]byte(s))
	}
	f.Add([]byte{})
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.rs файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".rs" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
