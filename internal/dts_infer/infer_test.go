package dts_infer

import "testing"

func TestInferConstNumberPreservesLiteral(t *testing.T) {
	r := Infer("3000", Options{IsConst: true})
	if r.Type != "3000" {
		t.Fatalf("expected literal 3000, got %q", r.Type)
	}
}

func TestInferLetNumberWidens(t *testing.T) {
	r := Infer("3000", Options{IsConst: false})
	if r.Type != "number" {
		t.Fatalf("expected widened number, got %q", r.Type)
	}
}

func TestInferObjectLiteralPreservesStringMemberLiterals(t *testing.T) {
	r := Infer(`{ apiUrl: 'https://x', timeout: '5000' }`, Options{IsConst: false})
	if !contains(r.Type, `apiUrl: 'https://x'`) {
		t.Fatalf("expected apiUrl literal preserved, got %q", r.Type)
	}
	if !contains(r.Type, `timeout: '5000'`) {
		t.Fatalf("expected timeout literal preserved, got %q", r.Type)
	}
}

func TestInferArrayAsConstTuple(t *testing.T) {
	r := Infer("[1, 2, 3] as const", Options{})
	if r.Type != "readonly [1, 2, 3]" {
		t.Fatalf("unexpected tuple type %q", r.Type)
	}
}

func TestInferArraySameTypeWidensToSlice(t *testing.T) {
	r := Infer("[fetchOne(), fetchTwo()]", Options{})
	if r.Type != "unknown[]" {
		t.Fatalf("expected unknown[] for runtime call elements, got %q", r.Type)
	}
}

func TestInferArrowFunctionReturnsBlockBodyUnknown(t *testing.T) {
	r := Infer("(x: number) => { return x * 2 }", Options{})
	if r.Type != "(x: number) => unknown" {
		t.Fatalf("unexpected arrow type %q", r.Type)
	}
}

func TestInferAsyncArrowWrapsPromise(t *testing.T) {
	r := Infer("async () => 'hi'", Options{IsConst: true})
	if r.Type != "() => Promise<string>" {
		t.Fatalf("unexpected async arrow type %q", r.Type)
	}
}

func TestInferNewBuiltin(t *testing.T) {
	r := Infer("new Map()", Options{})
	if r.Type != "Map<any, any>" {
		t.Fatalf("unexpected new-expression type %q", r.Type)
	}
}

func TestInferNewCustomClassWithGenerics(t *testing.T) {
	r := Infer("new Container<string>()", Options{})
	if r.Type != "Container<string>" {
		t.Fatalf("unexpected type %q", r.Type)
	}
}

func TestInferPromiseAll(t *testing.T) {
	r := Infer("Promise.all([1, 'a'])", Options{})
	if r.Type != "Promise<[number, string]>" {
		t.Fatalf("unexpected type %q", r.Type)
	}
}

func TestInferAwaitIsUnknown(t *testing.T) {
	r := Infer("await fetchThing()", Options{})
	if r.Type != "unknown" {
		t.Fatalf("expected unknown, got %q", r.Type)
	}
}

func contains(haystack, needle string) bool {
	return len(haystack) >= len(needle) && indexOf(haystack, needle) >= 0
}

func indexOf(haystack, needle string) int {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			return i
		}
	}
	return -1
}
