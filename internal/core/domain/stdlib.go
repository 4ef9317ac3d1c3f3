package domain

// stdlib lists the root modules shipped with CPython 2.7 and 3.x that must
// never be installed from a package manager.
var stdlib = map[string]struct{}{
	"__future__": {}, "abc": {}, "argparse": {}, "array": {}, "ast": {},
	"asyncio": {}, "atexit": {}, "base64": {}, "binascii": {}, "bisect": {},
	"builtins": {}, "bz2": {}, "calendar": {}, "cgi": {}, "cmath": {},
	"cmd": {}, "codecs": {}, "collections": {}, "colorsys": {}, "commands": {},
	"concurrent": {}, "configparser": {}, "ConfigParser": {}, "contextlib": {},
	"copy": {}, "copyreg": {}, "cPickle": {}, "cProfile": {}, "csv": {},
	"ctypes": {}, "cStringIO": {}, "curses": {}, "dataclasses": {},
	"datetime": {}, "dbm": {}, "decimal": {}, "difflib": {}, "dis": {},
	"distutils": {}, "doctest": {}, "email": {}, "enum": {}, "errno": {},
	"fcntl": {}, "filecmp": {}, "fnmatch": {}, "fractions": {}, "ftplib": {},
	"functools": {}, "gc": {}, "getopt": {}, "getpass": {}, "gettext": {},
	"glob": {}, "gzip": {}, "hashlib": {}, "heapq": {}, "hmac": {},
	"html": {}, "htmlentitydefs": {}, "HTMLParser": {}, "http": {},
	"httplib": {}, "imaplib": {}, "imp": {}, "importlib": {}, "inspect": {},
	"io": {}, "ipaddress": {}, "itertools": {}, "json": {}, "keyword": {},
	"linecache": {}, "locale": {}, "logging": {}, "lzma": {}, "mailbox": {},
	"marshal": {}, "math": {}, "mimetypes": {}, "mmap": {},
	"multiprocessing": {}, "netrc": {}, "numbers": {}, "operator": {},
	"optparse": {}, "os": {}, "pathlib": {}, "pdb": {}, "pickle": {},
	"pkgutil": {}, "platform": {}, "plistlib": {}, "poplib": {}, "posixpath": {},
	"pprint": {}, "profile": {}, "pstats": {}, "pty": {}, "queue": {},
	"Queue": {}, "quopri": {}, "random": {}, "re": {}, "readline": {},
	"reprlib": {}, "resource": {}, "rlcompleter": {}, "sched": {},
	"secrets": {}, "select": {}, "selectors": {}, "shelve": {}, "shlex": {},
	"shutil": {}, "signal": {}, "site": {}, "smtplib": {}, "socket": {},
	"socketserver": {}, "SocketServer": {}, "sqlite3": {}, "ssl": {},
	"stat": {}, "statistics": {}, "string": {}, "StringIO": {}, "struct": {},
	"subprocess": {}, "sys": {}, "sysconfig": {}, "syslog": {}, "tarfile": {},
	"tempfile": {}, "termios": {}, "textwrap": {}, "thread": {},
	"threading": {}, "time": {}, "timeit": {}, "token": {}, "tokenize": {},
	"trace": {}, "traceback": {}, "tty": {}, "turtle": {}, "types": {},
	"typing": {}, "unicodedata": {}, "unittest": {}, "urllib": {},
	"urllib2": {}, "urlparse": {}, "uuid": {}, "venv": {}, "warnings": {},
	"wave": {}, "weakref": {}, "webbrowser": {}, "wsgiref": {}, "xml": {},
	"xmlrpc": {}, "xmlrpclib": {}, "zipfile": {}, "zipimport": {}, "zlib": {},
}

// IsStdlib reports whether name is a standard library root module.
func IsStdlib(name string) bool {
	_, ok := stdlib[name]
	return ok
}
