package mobile

const tplPubspec = `name: [[ .Package ]]
description: [[ .Name ]] mobile client.
publish_to: 'none'
version: 1.0.0+1

environment:
  sdk: '>=3.3.0 <4.0.0'

dependencies:
  flutter:
    sdk: flutter
  http: ^1.2.1
  provider: ^6.1.2

dev_dependencies:
  flutter_test:
    sdk: flutter
  flutter_lints: ^4.0.0

flutter:
  uses-material-design: true
`

const tplAPIConfig = `class ApiConfig {
  ApiConfig._();

  static const String baseUrl = String.fromEnvironment(
    'API_BASE_URL',
    defaultValue: '[[ .BaseURL ]]',
  );

  /// Bearer token sent with every request once set.
  static String? token;

  static Uri uri(String path) => Uri.parse('$baseUrl$path');

  static Map<String, String> headers() {
    return {
      'Content-Type': 'application/json',
      'Accept': 'application/json',
      if (token != null) 'Authorization': 'Bearer $token',
    };
  }
}

class ApiException implements Exception {
  ApiException(this.statusCode, this.body);

  final int statusCode;
  final String body;

  @override
  String toString() => 'ApiException($statusCode): $body';
}
`

const tplMain = `import 'package:flutter/material.dart';
import 'package:provider/provider.dart';
[[- range .Models ]]
[[- if not .Link ]]
import 'providers/[[ .FileStem ]]_provider.dart';
import 'screens/[[ .FileStem ]]/[[ .FileStem ]]_list_screen.dart';
[[- end ]]
[[- end ]]

void main() {
  runApp(const MainApp());
}

class MainApp extends StatelessWidget {
  const MainApp({super.key});

  @override
  Widget build(BuildContext context) {
    return MultiProvider(
      providers: [
[[- range .Models ]]
[[- if not .Link ]]
        ChangeNotifierProvider(create: (_) => [[ .Name ]]Provider()),
[[- end ]]
[[- end ]]
      ],
      child: MaterialApp(
        title: '[[ dartString .Name ]]',
        theme: ThemeData(colorSchemeSeed: Colors.indigo, useMaterial3: true),
        home: const HomeScreen(),
      ),
    );
  }
}

class HomeScreen extends StatelessWidget {
  const HomeScreen({super.key});

  @override
  Widget build(BuildContext context) {
    return Scaffold(
      appBar: AppBar(title: const Text('[[ dartString .Name ]]')),
      body: ListView(
        children: [
[[- range .Models ]]
[[- if not .Link ]]
          ListTile(
            leading: const Icon(Icons.folder_outlined),
            title: const Text('[[ dartString .Label ]]'),
            trailing: const Icon(Icons.chevron_right),
            onTap: () => Navigator.of(context).push(
              MaterialPageRoute(builder: (_) => const [[ .Name ]]ListScreen()),
            ),
          ),
[[- end ]]
[[- end ]]
        ],
      ),
    );
  }
}
`

const tplModel = `[[ if .Parent -]]
import '[[ .ParentFile ]].dart';

[[ end -]]
class [[ .Name ]][[ if .Parent ]] extends [[ .Parent ]][[ end ]] {
  [[ .Name ]]({
[[- if .Parent ]]
    super.id,
[[- else if not .Link ]]
    this.id,
[[- end ]]
[[- range .Inherited ]]
    super.[[ .Name ]],
[[- end ]]
[[- range .Fields ]]
    this.[[ .Name ]],
[[- end ]]
  });
[[ if and (not .Parent) (not .Link) ]]
  int? id;
[[- end ]]
[[- range .Fields ]]
  [[ nullable .Type ]] [[ .Name ]];
[[- end ]]

  factory [[ .Name ]].fromJson(Map<String, dynamic> json) {
    return [[ .Name ]](
[[- if not .Link ]]
      id: (json['id'] as num?)?.toInt(),
[[- end ]]
[[- range .AllFields ]]
      [[ .Name ]]: [[ .Decode ]],
[[- end ]]
    );
  }

  [[ if .Parent ]]@override
  [[ end ]]Map<String, dynamic> toJson() {
    return {
[[- if .Parent ]]
      ...super.toJson(),
[[- else if not .Link ]]
      'id': id,
[[- end ]]
[[- range .Fields ]]
      '[[ .Name ]]': [[ .Encode ]],
[[- end ]]
    };
  }
}
`

const tplService = `import 'dart:convert';

import 'package:http/http.dart' as http;

import '../config/api_config.dart';
import '../models/[[ .FileStem ]].dart';

class [[ .Name ]]Service {
  [[ .Name ]]Service({http.Client? client}) : _client = client ?? http.Client();

  static const String path = '[[ .Route ]]';

  final http.Client _client;

  Future<List<[[ .Name ]]>> getAll() async {
    final response = await _client.get(ApiConfig.uri(path), headers: ApiConfig.headers());
    _check(response);
    final data = jsonDecode(response.body) as List<dynamic>;
    return data.map((e) => [[ .Name ]].fromJson(e as Map<String, dynamic>)).toList();
  }

  Future<[[ .Name ]]> getById(int id) async {
    final response = await _client.get(ApiConfig.uri('$path/$id'), headers: ApiConfig.headers());
    _check(response);
    return [[ .Name ]].fromJson(jsonDecode(response.body) as Map<String, dynamic>);
  }

  Future<[[ .Name ]]> create([[ .Name ]] item) async {
    final response = await _client.post(
      ApiConfig.uri(path),
      headers: ApiConfig.headers(),
      body: jsonEncode(item.toJson()),
    );
    _check(response);
    return [[ .Name ]].fromJson(jsonDecode(response.body) as Map<String, dynamic>);
  }

  Future<[[ .Name ]]> update(int id, [[ .Name ]] item) async {
    final response = await _client.put(
      ApiConfig.uri('$path/$id'),
      headers: ApiConfig.headers(),
      body: jsonEncode(item.toJson()),
    );
    _check(response);
    return [[ .Name ]].fromJson(jsonDecode(response.body) as Map<String, dynamic>);
  }

  Future<void> delete(int id) async {
    final response = await _client.delete(ApiConfig.uri('$path/$id'), headers: ApiConfig.headers());
    _check(response);
  }

  void _check(http.Response response) {
    if (response.statusCode < 200 || response.statusCode >= 300) {
      throw ApiException(response.statusCode, response.body);
    }
  }
}
`

const tplProvider = `import 'package:flutter/foundation.dart';

import '../models/[[ .FileStem ]].dart';
import '../services/[[ .FileStem ]]_service.dart';

class [[ .Name ]]Provider extends ChangeNotifier {
  [[ .Name ]]Provider({[[ .Name ]]Service? service}) : _service = service ?? [[ .Name ]]Service();

  final [[ .Name ]]Service _service;

  List<[[ .Name ]]> _items = [];
  bool _loading = false;
  String? _error;

  List<[[ .Name ]]> get items => List.unmodifiable(_items);
  bool get loading => _loading;
  String? get error => _error;

  Future<void> load() async {
    _loading = true;
    _error = null;
    notifyListeners();
    try {
      _items = await _service.getAll();
    } catch (e) {
      _error = e.toString();
    } finally {
      _loading = false;
      notifyListeners();
    }
  }

  Future<bool> save([[ .Name ]] item) async {
    try {
      final id = item.id;
      if (id == null) {
        await _service.create(item);
      } else {
        await _service.update(id, item);
      }
      await load();
      return true;
    } catch (e) {
      _error = e.toString();
      notifyListeners();
      return false;
    }
  }

  Future<void> remove(int id) async {
    try {
      await _service.delete(id);
      _items.removeWhere((e) => e.id == id);
    } catch (e) {
      _error = e.toString();
    }
    notifyListeners();
  }
}
`

const tplListScreen = `import 'package:flutter/material.dart';
import 'package:provider/provider.dart';

import '../../models/[[ .FileStem ]].dart';
import '../../providers/[[ .FileStem ]]_provider.dart';
import '[[ .FileStem ]]_form_screen.dart';

class [[ .Name ]]ListScreen extends StatefulWidget {
  const [[ .Name ]]ListScreen({super.key});

  @override
  State<[[ .Name ]]ListScreen> createState() => _[[ .Name ]]ListScreenState();
}

class _[[ .Name ]]ListScreenState extends State<[[ .Name ]]ListScreen> {
  @override
  void initState() {
    super.initState();
    WidgetsBinding.instance.addPostFrameCallback((_) {
      context.read<[[ .Name ]]Provider>().load();
    });
  }

  Future<void> _open([[ .Name ]]? item) async {
    await Navigator.of(context).push(
      MaterialPageRoute(builder: (_) => [[ .Name ]]FormScreen(item: item)),
    );
  }

  @override
  Widget build(BuildContext context) {
    final provider = context.watch<[[ .Name ]]Provider>();

    Widget body;
    if (provider.loading && provider.items.isEmpty) {
      body = const Center(child: CircularProgressIndicator());
    } else if (provider.error != null && provider.items.isEmpty) {
      body = Center(child: Text(provider.error!));
    } else {
      body = RefreshIndicator(
        onRefresh: provider.load,
        child: ListView.builder(
          itemCount: provider.items.length,
          itemBuilder: (context, index) {
            final item = provider.items[index];
            return ListTile(
              title: Text('${item.[[ .Title ]] ?? ''}'),
              subtitle: Text('#${item.id}'),
              onTap: () => _open(item),
              trailing: IconButton(
                icon: const Icon(Icons.delete_outline),
                onPressed: item.id == null ? null : () => provider.remove(item.id!),
              ),
            );
          },
        ),
      );
    }

    return Scaffold(
      appBar: AppBar(title: const Text('[[ dartString .Label ]]')),
      body: body,
      floatingActionButton: FloatingActionButton(
        onPressed: () => _open(null),
        child: const Icon(Icons.add),
      ),
    );
  }
}
`

const tplFormScreen = `import 'package:flutter/material.dart';
import 'package:provider/provider.dart';

import '../../models/[[ .FileStem ]].dart';
import '../../providers/[[ .FileStem ]]_provider.dart';

class [[ .Name ]]FormScreen extends StatefulWidget {
  const [[ .Name ]]FormScreen({super.key, this.item});

  final [[ .Name ]]? item;

  @override
  State<[[ .Name ]]FormScreen> createState() => _[[ .Name ]]FormScreenState();
}

class _[[ .Name ]]FormScreenState extends State<[[ .Name ]]FormScreen> {
  final _formKey = GlobalKey<FormState>();
  final Map<String, TextEditingController> _controllers = {};
  final Map<String, bool> _flags = {};
  bool _saving = false;

  @override
  void initState() {
    super.initState();
    final json = widget.item?.toJson() ?? const <String, dynamic>{};
[[- range .AllFields ]]
[[- if eq .Input "bool" ]]
    _flags['[[ .Name ]]'] = json['[[ .Name ]]'] as bool? ?? false;
[[- else if .Input ]]
    _controllers['[[ .Name ]]'] = TextEditingController(text: json['[[ .Name ]]']?.toString() ?? '');
[[- end ]]
[[- end ]]
  }

  @override
  void dispose() {
    for (final c in _controllers.values) {
      c.dispose();
    }
    super.dispose();
  }

  String? _text(String key) {
    final value = _controllers[key]!.text.trim();
    return value.isEmpty ? null : value;
  }

  Future<void> _submit() async {
    if (!_formKey.currentState!.validate()) {
      return;
    }
    setState(() => _saving = true);
    final json = <String, dynamic>{...?widget.item?.toJson()};
[[- range .AllFields ]]
[[- if eq .Input "text" "date" ]]
    json['[[ .Name ]]'] = _text('[[ .Name ]]');
[[- else if eq .Input "int" ]]
    json['[[ .Name ]]'] = int.tryParse(_text('[[ .Name ]]') ?? '');
[[- else if eq .Input "double" ]]
    json['[[ .Name ]]'] = double.tryParse(_text('[[ .Name ]]') ?? '');
[[- else if eq .Input "bool" ]]
    json['[[ .Name ]]'] = _flags['[[ .Name ]]'];
[[- end ]]
[[- end ]]
    final provider = context.read<[[ .Name ]]Provider>();
    final ok = await provider.save([[ .Name ]].fromJson(json));
    if (!mounted) {
      return;
    }
    setState(() => _saving = false);
    if (ok) {
      Navigator.of(context).pop();
    } else {
      ScaffoldMessenger.of(context).showSnackBar(
        SnackBar(content: Text(provider.error ?? 'Save failed')),
      );
    }
  }

  @override
  Widget build(BuildContext context) {
    return Scaffold(
      appBar: AppBar(
        title: Text(widget.item == null ? 'New [[ dartString .Label ]]' : 'Edit [[ dartString .Label ]]'),
      ),
      body: Form(
        key: _formKey,
        child: ListView(
          padding: const EdgeInsets.all(16),
          children: [
[[- range .AllFields ]]
[[- if eq .Input "bool" ]]
            SwitchListTile(
              title: const Text('[[ dartString .Label ]]'),
              value: _flags['[[ .Name ]]'] ?? false,
              onChanged: (v) => setState(() => _flags['[[ .Name ]]'] = v),
            ),
[[- else if .Input ]]
            TextFormField(
              controller: _controllers['[[ .Name ]]'],
              decoration: const InputDecoration(labelText: '[[ dartString .Label ]]'[[ if eq .Input "date" ]], hintText: 'YYYY-MM-DD'[[ end ]]),
[[- if eq .Input "int" "double" ]]
              keyboardType: const TextInputType.numberWithOptions(decimal: [[ if eq .Input "double" ]]true[[ else ]]false[[ end ]]),
              validator: (v) => v == null || v.trim().isEmpty || num.tryParse(v.trim()) != null ? null : 'Enter a number',
[[- else if eq .Input "date" ]]
              keyboardType: TextInputType.datetime,
              validator: (v) => v == null || v.trim().isEmpty || DateTime.tryParse(v.trim()) != null ? null : 'Enter a date',
[[- end ]]
            ),
[[- end ]]
[[- end ]]
            const SizedBox(height: 24),
            FilledButton(
              onPressed: _saving ? null : _submit,
              child: Text(_saving ? 'Saving...' : 'Save'),
            ),
          ],
        ),
      ),
    );
  }
}
`

const tplReadme = `# [[ .Name ]] mobile

Flutter client for the generated REST API.

    flutter pub get
    flutter run --dart-define=API_BASE_URL=[[ .BaseURL ]]
`
